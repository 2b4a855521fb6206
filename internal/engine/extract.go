package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
)

// consultationFacts yields a draft for every consultation inside the
// lead window.
func (e *Engine) consultationFacts(log *slog.Logger, now time.Time, events []model.CalendarEvent, s model.NotificationSettings) []model.NotificationRecord {
	lead := time.Duration(s.ConsultationLeadMinutes) * time.Minute

	var drafts []model.NotificationRecord
	for _, ev := range events {
		if ev.Category != model.CategoryConsultation {
			continue
		}
		at, err := eventTime(ev.Date, ev.Time, now.Location())
		if err != nil {
			log.Warn("skipping calendar event", "event_id", ev.ID, "error", err)
			continue
		}
		if !dueWithinLead(now, at, lead) {
			continue
		}
		drafts = append(drafts, model.NotificationRecord{
			Key:             fmt.Sprintf("cal:%d:consultation", ev.ID),
			Kind:            model.KindConsultation,
			Title:           fmt.Sprintf("Consultation with %s", consultationLabel(ev)),
			Message:         fmt.Sprintf("Scheduled for %s at %s.", ev.Date, clockOrDefault(ev.Time)),
			EventAt:         &at,
			CalendarEventID: ev.ID,
			WorkOrderID:     ev.WorkOrderID,
			CustomerID:      ev.CustomerID,
			Date:            ev.Date,
			Time:            clockOrDefault(ev.Time),
		})
	}
	return drafts
}

// partsDeliveryFacts yields a draft for every pending parts delivery
// inside the lookahead window, plus overdue ones when configured.
func (e *Engine) partsDeliveryFacts(log *slog.Logger, now time.Time, events []model.CalendarEvent, s model.NotificationSettings) []model.NotificationRecord {
	lookahead := time.Duration(s.PartsDeliveryLookaheadDays) * 24 * time.Hour

	var drafts []model.NotificationRecord
	for _, ev := range events {
		if ev.Category != model.CategoryParts {
			continue
		}
		// Ordered parts only show up in the digest; an unset status is
		// treated as a pending delivery.
		if ev.PartsStatus != model.PartsStatusDelivery && ev.PartsStatus != "" {
			continue
		}
		at, err := eventTime(ev.Date, ev.Time, now.Location())
		if err != nil {
			log.Warn("skipping calendar event", "event_id", ev.ID, "error", err)
			continue
		}
		if !dueWithinLookahead(now, at, lookahead, s.IncludeOverduePartsDelivery) {
			continue
		}
		drafts = append(drafts, model.NotificationRecord{
			Key:             fmt.Sprintf("cal:%d:parts_delivery", ev.ID),
			Kind:            model.KindPartsDelivery,
			Title:           fmt.Sprintf("Parts delivery: %s", partsLabel(ev)),
			Message:         fmt.Sprintf("Expected %s.", ev.Date),
			EventAt:         &at,
			CalendarEventID: ev.ID,
			WorkOrderID:     ev.WorkOrderID,
			SaleID:          ev.SaleID,
			CustomerID:      ev.CustomerID,
			Date:            ev.Date,
			Time:            clockOrDefault(ev.Time),
			OrderURL:        ev.OrderURL,
			TrackingURL:     ev.TrackingURL,
		})
	}
	return drafts
}

// eventFacts yields a draft for every generic event inside the lead window.
func (e *Engine) eventFacts(log *slog.Logger, now time.Time, events []model.CalendarEvent, s model.NotificationSettings) []model.NotificationRecord {
	lead := time.Duration(s.EventLeadMinutes) * time.Minute

	var drafts []model.NotificationRecord
	for _, ev := range events {
		if ev.Category != model.CategoryEvent {
			continue
		}
		at, err := eventTime(ev.Date, ev.Time, now.Location())
		if err != nil {
			log.Warn("skipping calendar event", "event_id", ev.ID, "error", err)
			continue
		}
		if !dueWithinLead(now, at, lead) {
			continue
		}
		drafts = append(drafts, model.NotificationRecord{
			Key:             fmt.Sprintf("cal:%d:event", ev.ID),
			Kind:            model.KindEvent,
			Title:           fmt.Sprintf("Upcoming event: %s", eventLabel(ev)),
			Message:         fmt.Sprintf("Starts %s at %s.", ev.Date, clockOrDefault(ev.Time)),
			EventAt:         &at,
			CalendarEventID: ev.ID,
			CustomerID:      ev.CustomerID,
			Date:            ev.Date,
			Time:            clockOrDefault(ev.Time),
		})
	}
	return drafts
}

// scheduleChangeFacts compares every technician's weekly schedule hash
// against the persisted fingerprint baseline. The first observation of a
// technician records the baseline without alerting; later runs alert
// once per change and move the baseline forward.
func (e *Engine) scheduleChangeFacts(ctx context.Context, log *slog.Logger, now time.Time, technicians []model.Technician) ([]model.NotificationRecord, error) {
	recs, err := e.store.Get(ctx, store.CollectionScheduleFingerprints)
	if err != nil {
		return nil, fmt.Errorf("loading schedule fingerprints: %w", err)
	}

	known := make(map[int64]model.ScheduleFingerprint, len(recs))
	for _, rec := range recs {
		fp, err := store.Decode[model.ScheduleFingerprint](rec)
		if err != nil {
			log.Warn("skipping undecodable fingerprint", "id", rec.ID, "error", err)
			continue
		}
		fp.ID = rec.ID
		known[fp.TechnicianID] = fp
	}

	var drafts []model.NotificationRecord
	for _, tech := range technicians {
		hash, err := fingerprint(tech.Schedule)
		if err != nil {
			log.Warn("skipping technician schedule", "technician_id", tech.ID, "error", err)
			continue
		}

		prev, seen := known[tech.ID]
		if !seen {
			fp := model.ScheduleFingerprint{TechnicianID: tech.ID, Hash: hash, UpdatedAt: now}
			if _, err := e.store.Add(ctx, store.CollectionScheduleFingerprints, fp); err != nil {
				log.Warn("recording schedule baseline", "technician_id", tech.ID, "error", err)
			}
			continue
		}
		if prev.Hash == hash {
			continue
		}

		fp := model.ScheduleFingerprint{ID: prev.ID, TechnicianID: tech.ID, Hash: hash, UpdatedAt: now}
		if _, err := e.store.Update(ctx, store.CollectionScheduleFingerprints, prev.ID, fp); err != nil {
			// Leave the old baseline in place; the next run re-detects.
			log.Warn("updating schedule fingerprint", "technician_id", tech.ID, "error", err)
			continue
		}

		drafts = append(drafts, model.NotificationRecord{
			Key:     fmt.Sprintf("tech:%d:schedule:%s", tech.ID, hash),
			Kind:    model.KindTechSchedule,
			Title:   fmt.Sprintf("Schedule updated: %s", tech.Name),
			Message: scheduleSummary(tech.Schedule),
			Date:    now.Format("2006-01-02"),
		})
	}
	return drafts, nil
}

// digestFact yields today's digest draft once the trigger time has
// passed (or immediately when digest-on-open is set). The key embeds the
// calendar date, so repeated runs on the same day converge on one record.
func (e *Engine) digestFact(now time.Time, s model.NotificationSettings, events []model.CalendarEvent, technicians []model.Technician) *model.NotificationRecord {
	if !s.DailyDigestEnabled {
		return nil
	}
	if !s.DailyDigestOnOpen {
		trigger, err := todayAt(now, s.DailyDigestTimeLocal)
		if err != nil || now.Before(trigger) {
			return nil
		}
	}

	today := now.Format("2006-01-02")
	at := startOfDay(now)
	return &model.NotificationRecord{
		Key:     "daily:" + today,
		Kind:    model.KindDailyDigest,
		Title:   "Daily summary for " + today,
		Message: composeDigest(now, events, technicians),
		EventAt: &at,
		Date:    today,
	}
}

// consultationLabel names the customer a consultation is with.
func consultationLabel(ev model.CalendarEvent) string {
	if ev.CustomerName != "" {
		return ev.CustomerName
	}
	if ev.Title != "" {
		return ev.Title
	}
	return "customer"
}

// partsLabel names a parts entry.
func partsLabel(ev model.CalendarEvent) string {
	if ev.Title != "" {
		return ev.Title
	}
	return "parts order"
}

// eventLabel names a generic event entry.
func eventLabel(ev model.CalendarEvent) string {
	if ev.Title != "" {
		return ev.Title
	}
	return "event"
}
