package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collections the notification engine reads and writes.
const (
	CollectionCalendarEvents       = "calendarEvents"
	CollectionTechnicians          = "technicians"
	CollectionNotifications        = "notifications"
	CollectionNotificationSettings = "notificationSettings"
	CollectionScheduleFingerprints = "techScheduleFingerprints"
)

// ErrNotFound is returned when an update or delete names a record id that
// does not exist in the collection.
var ErrNotFound = errors.New("record not found")

// Record is one row in a named collection: the store-assigned id plus the
// JSON document the caller stored.
type Record struct {
	ID   int64
	Data json.RawMessage
}

// Store is the minimal record-store boundary the host supplies to the
// engine. Collections are flat lists of JSON documents; the store assigns
// ids on Add and replaces whole documents on Update.
type Store interface {
	// Get returns every record in the named collection, ordered by id.
	Get(ctx context.Context, collection string) ([]Record, error)

	// Add marshals doc, appends it to the collection, and returns the
	// stored record with its assigned id.
	Add(ctx context.Context, collection string, doc any) (Record, error)

	// Update replaces the document of the record with the given id.
	// Returns ErrNotFound if no such record exists.
	Update(ctx context.Context, collection string, id int64, doc any) (Record, error)

	// Delete removes the record with the given id. Returns ErrNotFound
	// if no such record exists.
	Delete(ctx context.Context, collection string, id int64) error
}

// Decode unmarshals a record's document into T. The store-assigned id is
// carried on the Record, not inside the document, so callers that need it
// copy rec.ID onto the decoded value.
func Decode[T any](rec Record) (T, error) {
	var v T
	if err := json.Unmarshal(rec.Data, &v); err != nil {
		return v, fmt.Errorf("decoding record %d: %w", rec.ID, err)
	}
	return v, nil
}

// DecodeAll unmarshals every record's document into a slice of T.
func DecodeAll[T any](recs []Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := Decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
