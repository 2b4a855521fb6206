package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ghalloran/shopdesk/internal/model"
)

func TestReconcile_Insert(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	draft := model.NotificationRecord{
		Key:   "cal:1:consultation",
		Kind:  model.KindConsultation,
		Title: "Consultation with Jane Doe",
	}

	merged, op := reconcile(nil, draft, now)

	assert.Equal(t, opInsert, op)
	assert.True(t, merged.CreatedAt.Equal(now))
	assert.Nil(t, merged.ReadAt)
}

func TestReconcile_NoOpWhenUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	created := now.Add(-2 * time.Hour)
	existing := model.NotificationRecord{
		ID:        7,
		Key:       "cal:1:consultation",
		Kind:      model.KindConsultation,
		Title:     "Consultation with Jane Doe",
		CreatedAt: created,
	}
	draft := model.NotificationRecord{
		Key:   "cal:1:consultation",
		Kind:  model.KindConsultation,
		Title: "Consultation with Jane Doe",
	}

	_, op := reconcile(&existing, draft, now)
	assert.Equal(t, opNoop, op)
}

func TestReconcile_UpdateKeepsCreatedAtAndReadAt(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	created := now.Add(-2 * time.Hour)
	readAt := now.Add(-1 * time.Hour)
	existing := model.NotificationRecord{
		ID:        7,
		Key:       "daily:2026-03-02",
		Kind:      model.KindDailyDigest,
		Title:     "Daily summary for 2026-03-02",
		Message:   "Consultations:\n- 09:00 Jane Doe",
		CreatedAt: created,
		ReadAt:    &readAt,
	}
	draft := model.NotificationRecord{
		Key:     "daily:2026-03-02",
		Kind:    model.KindDailyDigest,
		Title:   "Daily summary for 2026-03-02",
		Message: "Consultations:\n- 09:00 Jane Doe\n- 14:00 Marcus Webb",
	}

	merged, op := reconcile(&existing, draft, now)

	assert.Equal(t, opUpdate, op)
	assert.Equal(t, int64(7), merged.ID)
	assert.True(t, merged.CreatedAt.Equal(created), "createdAt must survive the merge")
	assert.NotNil(t, merged.ReadAt)
	assert.True(t, merged.ReadAt.Equal(readAt), "readAt must survive the merge")
	assert.Equal(t, draft.Message, merged.Message)
}

func TestReconcile_DraftNeverUnreads(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	readAt := now.Add(-1 * time.Hour)
	existing := model.NotificationRecord{
		ID:        3,
		Key:       "cal:9:event",
		Kind:      model.KindEvent,
		Title:     "Upcoming event: Staff meeting",
		CreatedAt: now.Add(-3 * time.Hour),
		ReadAt:    &readAt,
	}
	// Extractors never set readAt on drafts; the merge must keep it.
	draft := model.NotificationRecord{
		Key:   "cal:9:event",
		Kind:  model.KindEvent,
		Title: "Upcoming event: Staff meeting",
	}

	merged, op := reconcile(&existing, draft, now)
	assert.Equal(t, opNoop, op)
	assert.NotNil(t, merged.ReadAt)
}
