package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ghalloran/shopdesk/internal/model"
)

// composeDigest builds the multi-section plain-text digest body for
// now's calendar date. Sections with no items are omitted entirely, so
// the body is stable across runs until the day's facts change.
func composeDigest(now time.Time, events []model.CalendarEvent, technicians []model.Technician) string {
	today := now.Format("2006-01-02")

	var consultations, ordered, deliveries, general []model.CalendarEvent
	for _, ev := range events {
		if ev.Date != today {
			continue
		}
		switch ev.Category {
		case model.CategoryConsultation:
			consultations = append(consultations, ev)
		case model.CategoryParts:
			switch ev.PartsStatus {
			case model.PartsStatusOrdered:
				ordered = append(ordered, ev)
			case model.PartsStatusDelivery, "":
				deliveries = append(deliveries, ev)
			}
		case model.CategoryEvent:
			general = append(general, ev)
		}
	}

	var b strings.Builder
	writeSection(&b, "Consultations", consultations, consultationLabel)
	writeSection(&b, "Parts ordered", ordered, partsLabel)
	writeSection(&b, "Parts deliveries", deliveries, partsLabel)
	writeSection(&b, "Events", general, eventLabel)

	if len(technicians) > 0 {
		sorted := make([]model.Technician, len(technicians))
		copy(sorted, technicians)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Name < sorted[j].Name
		})

		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Schedules:\n")
		for _, tech := range sorted {
			fmt.Fprintf(&b, "- %s: %s\n", tech.Name, tech.Schedule.Day(now.Weekday()).Label())
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeSection appends one digest section, items sorted ascending by
// time of day. Empty sections are skipped, header included.
func writeSection(b *strings.Builder, header string, items []model.CalendarEvent, label func(model.CalendarEvent) string) {
	if len(items) == 0 {
		return
	}

	sorted := make([]model.CalendarEvent, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return clockOrDefault(sorted[i].Time) < clockOrDefault(sorted[j].Time)
	})

	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(header + ":\n")
	for _, ev := range sorted {
		fmt.Fprintf(b, "- %s %s\n", clockOrDefault(ev.Time), label(ev))
	}
}

// scheduleSummary renders a full week of working hours for the
// schedule-change notification body.
func scheduleSummary(w model.WeekSchedule) string {
	days := []struct {
		name string
		day  model.DaySchedule
	}{
		{"Mon", w.Mon}, {"Tue", w.Tue}, {"Wed", w.Wed},
		{"Thu", w.Thu}, {"Fri", w.Fri}, {"Sat", w.Sat}, {"Sun", w.Sun},
	}

	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, d.name+" "+d.day.Label())
	}
	return strings.Join(parts, ", ")
}
