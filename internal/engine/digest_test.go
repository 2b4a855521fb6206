package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ghalloran/shopdesk/internal/model"
)

// digestNow is a Monday at noon.
var digestNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func digestEvents() []model.CalendarEvent {
	return []model.CalendarEvent{
		{Category: model.CategoryConsultation, Date: "2026-03-02", Time: "09:30", CustomerName: "Jane Doe"},
		{Category: model.CategoryConsultation, Date: "2026-03-02", CustomerName: "Marcus Webb"},
		{Category: model.CategoryParts, Date: "2026-03-02", Time: "10:15", Title: "Brake pads", PartsStatus: model.PartsStatusOrdered},
		{Category: model.CategoryParts, Date: "2026-03-02", Time: "14:00", Title: "Alternator", PartsStatus: model.PartsStatusDelivery},
		{Category: model.CategoryParts, Date: "2026-03-02", Time: "08:00", Title: "Coolant hoses"},
		{Category: model.CategoryEvent, Date: "2026-03-02", Time: "18:00", Title: "Staff meeting"},
		// Tomorrow's entries never appear in today's digest.
		{Category: model.CategoryConsultation, Date: "2026-03-03", Time: "09:00", CustomerName: "Elsewhere"},
	}
}

func digestTechnicians() []model.Technician {
	return []model.Technician{
		{Name: "Bob Ortiz", Schedule: model.WeekSchedule{Mon: model.DaySchedule{Off: true}}},
		{Name: "Alice Nguyen", Schedule: model.WeekSchedule{Mon: model.DaySchedule{Start: "08:00", End: "16:00"}}},
	}
}

func TestComposeDigest_Full(t *testing.T) {
	body := composeDigest(digestNow, digestEvents(), digestTechnicians())

	g := goldie.New(t)
	g.Assert(t, "digest_full", []byte(body))
}

func TestComposeDigest_OmitsEmptySections(t *testing.T) {
	events := []model.CalendarEvent{
		{Category: model.CategoryConsultation, Date: "2026-03-02", Time: "09:30", CustomerName: "Jane Doe"},
	}

	body := composeDigest(digestNow, events, nil)

	assert.Equal(t, "Consultations:\n- 09:30 Jane Doe", body)
	assert.NotContains(t, body, "Parts")
	assert.NotContains(t, body, "Events:")
	assert.NotContains(t, body, "Schedules:")
}

func TestComposeDigest_SortsByTimeAndName(t *testing.T) {
	body := composeDigest(digestNow, digestEvents(), digestTechnicians())

	// Date-only entries sort at their 09:00 default, before 09:30.
	assert.Less(t,
		indexOf(t, body, "Marcus Webb"),
		indexOf(t, body, "Jane Doe"),
	)
	// Technicians sort by display name.
	assert.Less(t,
		indexOf(t, body, "Alice Nguyen"),
		indexOf(t, body, "Bob Ortiz"),
	)
}

func TestComposeDigest_StableAcrossRuns(t *testing.T) {
	a := composeDigest(digestNow, digestEvents(), digestTechnicians())
	b := composeDigest(digestNow.Add(2*time.Hour), digestEvents(), digestTechnicians())
	assert.Equal(t, a, b, "the body depends on the date, not the instant")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	idx := strings.Index(s, sub)
	if idx < 0 {
		t.Fatalf("expected %q to contain %q", s, sub)
	}
	return idx
}
