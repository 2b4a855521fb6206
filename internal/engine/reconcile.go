package engine

import (
	"time"

	"github.com/ghalloran/shopdesk/internal/model"
)

// reconcileOp classifies the write needed to converge one draft.
type reconcileOp int

const (
	opNoop reconcileOp = iota
	opInsert
	opUpdate
)

// reconcile merges a draft against the existing record sharing its key.
// Unknown keys become inserts stamped with now and unread. For known
// keys the existing record's createdAt and readAt always win, so
// reconciliation can never un-read a notification or reset its age; if
// the merge changes nothing the write is skipped.
func reconcile(existing *model.NotificationRecord, draft model.NotificationRecord, now time.Time) (model.NotificationRecord, reconcileOp) {
	if existing == nil {
		draft.CreatedAt = now
		draft.ReadAt = nil
		return draft, opInsert
	}

	merged := draft
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.ReadAt = existing.ReadAt

	if merged.Equal(*existing) {
		return *existing, opNoop
	}
	return merged, opUpdate
}
