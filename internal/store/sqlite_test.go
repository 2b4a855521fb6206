package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
	"github.com/ghalloran/shopdesk/tests/testutil"
)

func TestSQLiteStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	rec1, err := s.Add(ctx, store.CollectionCalendarEvents, model.CalendarEvent{
		Category: model.CategoryConsultation,
		Date:     "2026-03-02",
		Time:     "09:30",
	})
	require.NoError(t, err)
	rec2, err := s.Add(ctx, store.CollectionCalendarEvents, model.CalendarEvent{
		Category: model.CategoryEvent,
		Date:     "2026-03-03",
	})
	require.NoError(t, err)
	assert.Greater(t, rec2.ID, rec1.ID, "ids are assigned in insert order")

	// Records in another collection stay invisible.
	_, err = s.Add(ctx, store.CollectionTechnicians, model.Technician{Name: "Alice Nguyen"})
	require.NoError(t, err)

	recs, err := s.Get(ctx, store.CollectionCalendarEvents)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, rec1.ID, recs[0].ID)

	events, err := store.DecodeAll[model.CalendarEvent](recs)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryConsultation, events[0].Category)
	assert.Equal(t, "09:30", events[0].Time)
}

func TestSQLiteStore_Update(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	rec, err := s.Add(ctx, store.CollectionTechnicians, model.Technician{Name: "Alice Nguyen"})
	require.NoError(t, err)

	_, err = s.Update(ctx, store.CollectionTechnicians, rec.ID, model.Technician{Name: "Alice N."})
	require.NoError(t, err)

	recs, err := s.Get(ctx, store.CollectionTechnicians)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	tech, err := store.Decode[model.Technician](recs[0])
	require.NoError(t, err)
	assert.Equal(t, "Alice N.", tech.Name)
}

func TestSQLiteStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	_, err := s.Update(ctx, store.CollectionTechnicians, 123, model.Technician{Name: "Nobody"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	rec, err := s.Add(ctx, store.CollectionNotifications, model.NotificationRecord{Key: "daily:2026-03-02"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, store.CollectionNotifications, rec.ID))

	recs, err := s.Get(ctx, store.CollectionNotifications)
	require.NoError(t, err)
	assert.Empty(t, recs)

	assert.ErrorIs(t, s.Delete(ctx, store.CollectionNotifications, rec.ID), store.ErrNotFound)
}

func TestSQLiteStore_WrongCollectionID(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	rec, err := s.Add(ctx, store.CollectionTechnicians, model.Technician{Name: "Alice Nguyen"})
	require.NoError(t, err)

	// An id is only addressable through its own collection.
	assert.ErrorIs(t,
		s.Delete(ctx, store.CollectionNotifications, rec.ID),
		store.ErrNotFound,
	)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shopdesk.db")

	s, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = s.Add(ctx, store.CollectionTechnicians, model.Technician{Name: "Alice Nguyen"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening runs migrations again; they must be no-ops.
	s2, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	recs, err := s2.Get(ctx, store.CollectionTechnicians)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestDecode_BadDocument(t *testing.T) {
	_, err := store.Decode[model.Technician](store.Record{ID: 1, Data: []byte("{broken")})
	assert.Error(t, err)
}
