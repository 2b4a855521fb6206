package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
)

// Notifications returns the persisted notification set, newest first,
// for the host's notification list.
func (e *Engine) Notifications(ctx context.Context) ([]model.NotificationRecord, error) {
	recs, err := e.store.Get(ctx, store.CollectionNotifications)
	if err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}

	notifications := make([]model.NotificationRecord, 0, len(recs))
	for _, rec := range recs {
		n, err := store.Decode[model.NotificationRecord](rec)
		if err != nil {
			return nil, err
		}
		n.ID = rec.ID
		notifications = append(notifications, n)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkRead stamps the notification's readAt. Reading an already-read
// notification is a no-op.
func (e *Engine) MarkRead(ctx context.Context, id int64) error {
	n, err := e.notification(ctx, id)
	if err != nil {
		return err
	}
	if n.ReadAt != nil {
		return nil
	}

	now := e.now()
	n.ReadAt = &now
	if _, err := e.store.Update(ctx, store.CollectionNotifications, id, n); err != nil {
		return fmt.Errorf("marking notification %d read: %w", id, err)
	}
	return nil
}

// MarkUnread clears readAt by explicit user action. Reconciliation never
// does this on its own.
func (e *Engine) MarkUnread(ctx context.Context, id int64) error {
	n, err := e.notification(ctx, id)
	if err != nil {
		return err
	}
	if n.ReadAt == nil {
		return nil
	}

	n.ReadAt = nil
	if _, err := e.store.Update(ctx, store.CollectionNotifications, id, n); err != nil {
		return fmt.Errorf("marking notification %d unread: %w", id, err)
	}
	return nil
}

// notification loads a single record by store id.
func (e *Engine) notification(ctx context.Context, id int64) (model.NotificationRecord, error) {
	recs, err := e.store.Get(ctx, store.CollectionNotifications)
	if err != nil {
		return model.NotificationRecord{}, fmt.Errorf("loading notifications: %w", err)
	}
	for _, rec := range recs {
		if rec.ID != id {
			continue
		}
		n, err := store.Decode[model.NotificationRecord](rec)
		if err != nil {
			return model.NotificationRecord{}, err
		}
		n.ID = rec.ID
		return n, nil
	}
	return model.NotificationRecord{}, fmt.Errorf("notification %d: %w", id, store.ErrNotFound)
}
