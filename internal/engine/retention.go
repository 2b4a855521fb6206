package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
)

// sweepAll re-reads the notification collection and applies retention.
// A read failure skips the sweep for this run.
func (e *Engine) sweepAll(ctx context.Context, log *slog.Logger, now time.Time, s model.NotificationSettings) {
	recs, err := e.store.Get(ctx, store.CollectionNotifications)
	if err != nil {
		log.Warn("skipping retention sweep", "error", err)
		return
	}

	notifications := make([]model.NotificationRecord, 0, len(recs))
	for _, rec := range recs {
		n, err := store.Decode[model.NotificationRecord](rec)
		if err != nil {
			log.Warn("skipping undecodable notification", "id", rec.ID, "error", err)
			continue
		}
		n.ID = rec.ID
		notifications = append(notifications, n)
	}

	e.sweep(ctx, log, now, s, notifications)
}

// sweep deletes read notifications past the read-retention window and
// unread ones past the unread-retention window. Unread age is measured
// from the underlying fact's time when it has one, else from creation.
// Individual delete failures do not stop the sweep.
func (e *Engine) sweep(ctx context.Context, log *slog.Logger, now time.Time, s model.NotificationSettings, notifications []model.NotificationRecord) {
	purgeRead := time.Duration(s.PurgeReadAfterDays) * 24 * time.Hour
	keepUnread := time.Duration(s.KeepUnreadDays) * 24 * time.Hour

	for _, n := range notifications {
		var stale bool
		if n.ReadAt != nil {
			stale = s.PurgeReadAfterDays > 0 && now.Sub(*n.ReadAt) > purgeRead
		} else {
			effective := n.CreatedAt
			if n.EventAt != nil {
				effective = *n.EventAt
			}
			stale = now.Sub(effective) > keepUnread
		}
		if !stale {
			continue
		}

		if err := e.store.Delete(ctx, store.CollectionNotifications, n.ID); err != nil {
			log.Warn("sweeping notification", "id", n.ID, "key", n.Key, "error", err)
		}
	}
}
