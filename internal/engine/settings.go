package engine

import (
	"context"
	"fmt"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
)

// LoadSettings returns the singleton settings record, creating it with
// schema defaults on first read. Loaded values are clamped and
// normalized, so a hand-edited record can never break a sync.
func (e *Engine) LoadSettings(ctx context.Context) (model.NotificationSettings, error) {
	recs, err := e.store.Get(ctx, store.CollectionNotificationSettings)
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("loading notification settings: %w", err)
	}

	if len(recs) == 0 {
		s := model.DefaultNotificationSettings()
		rec, err := e.store.Add(ctx, store.CollectionNotificationSettings, s)
		if err != nil {
			return model.NotificationSettings{}, fmt.Errorf("creating default settings: %w", err)
		}
		s.ID = rec.ID
		return s, nil
	}

	s, err := store.Decode[model.NotificationSettings](recs[0])
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("decoding notification settings: %w", err)
	}
	s.ID = recs[0].ID
	s.Normalize()
	return s, nil
}

// SaveSettings clamps and normalizes next, then writes it over the
// singleton record (insert on first save, update thereafter).
func (e *Engine) SaveSettings(ctx context.Context, next model.NotificationSettings) (model.NotificationSettings, error) {
	next.Normalize()

	recs, err := e.store.Get(ctx, store.CollectionNotificationSettings)
	if err != nil {
		return model.NotificationSettings{}, fmt.Errorf("loading notification settings: %w", err)
	}

	if len(recs) == 0 {
		rec, err := e.store.Add(ctx, store.CollectionNotificationSettings, next)
		if err != nil {
			return model.NotificationSettings{}, fmt.Errorf("creating settings: %w", err)
		}
		next.ID = rec.ID
		return next, nil
	}

	next.ID = recs[0].ID
	if _, err := e.store.Update(ctx, store.CollectionNotificationSettings, next.ID, next); err != nil {
		return model.NotificationSettings{}, fmt.Errorf("saving settings: %w", err)
	}
	return next, nil
}
