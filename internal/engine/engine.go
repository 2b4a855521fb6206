package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghalloran/shopdesk/internal/model"
	"github.com/ghalloran/shopdesk/internal/store"
)

// Engine converges the persisted notification collection to the set of
// notifications that should exist right now, given the shop calendar,
// the technician roster, and the user's settings.
//
// The engine has no internal timers. The host calls Sync whenever data
// changes or the application opens; repeated calls against unchanged
// sources are no-ops. Callers must serialize Sync invocations for a
// given store.
type Engine struct {
	store store.Store
	log   *slog.Logger
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithNow overrides the engine's clock. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine backed by the given record store.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store: s,
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig opens the SQLite record store named by the host
// configuration and wires an Engine over it with a JSON logger at the
// configured level. The caller owns the returned store and must close
// it when done with the engine. Options are applied after the
// config-derived logger, so WithLogger still overrides it.
func NewFromConfig(cfg *model.AppConfig, opts ...Option) (*Engine, *store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening record store: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	eng := New(s, append([]Option{WithLogger(log)}, opts...)...)
	return eng, s, nil
}

// parseLogLevel maps a config log-level string to a slog level,
// defaulting to info for unknown values.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Sync runs one full reconciliation pass: load settings and sources,
// derive the desired notification set, upsert it against the persisted
// collection, then apply retention. A failed source read skips that
// category; a failed individual write is logged and the pass continues.
// Sync returns an error only when the notification collection itself
// cannot be read, since then there is nothing to reconcile against.
func (e *Engine) Sync(ctx context.Context) error {
	now := e.now()
	log := e.log.With("run_id", uuid.NewString())

	settings, err := e.LoadSettings(ctx)
	if err != nil {
		// Bad or unreadable settings never fail a run.
		log.Warn("loading settings failed, using defaults", "error", err)
		settings = model.DefaultNotificationSettings()
	}

	sourcesOK := true
	events, err := e.loadCalendarEvents(ctx, log)
	if err != nil {
		log.Warn("skipping calendar categories", "error", err)
		sourcesOK = false
	}
	technicians, err := e.loadTechnicians(ctx, log)
	if err != nil {
		log.Warn("skipping technician categories", "error", err)
		sourcesOK = false
	}

	existingRecs, err := e.store.Get(ctx, store.CollectionNotifications)
	if err != nil {
		return fmt.Errorf("loading notifications: %w", err)
	}
	existing := make(map[string]*model.NotificationRecord, len(existingRecs))
	for _, rec := range existingRecs {
		n, err := store.Decode[model.NotificationRecord](rec)
		if err != nil {
			log.Warn("skipping undecodable notification", "id", rec.ID, "error", err)
			continue
		}
		n.ID = rec.ID
		existing[n.Key] = &n
	}

	var drafts []model.NotificationRecord
	if settings.ConsultationsEnabled {
		drafts = append(drafts, e.consultationFacts(log, now, events, settings)...)
	}
	if settings.PartsDeliveryEnabled {
		drafts = append(drafts, e.partsDeliveryFacts(log, now, events, settings)...)
	}
	if settings.EventsEnabled {
		drafts = append(drafts, e.eventFacts(log, now, events, settings)...)
	}
	if settings.TechScheduleChangesEnabled {
		scheduleDrafts, err := e.scheduleChangeFacts(ctx, log, now, technicians)
		if err != nil {
			log.Warn("skipping schedule change detection", "error", err)
		}
		drafts = append(drafts, scheduleDrafts...)
	}
	// A digest composed while a source read failed would rewrite the
	// existing record with sections missing; leave it for a later run.
	if sourcesOK {
		if d := e.digestFact(now, settings, events, technicians); d != nil {
			drafts = append(drafts, *d)
		}
	}

	var inserted, updated int
	for _, draft := range drafts {
		merged, op := reconcile(existing[draft.Key], draft, now)
		switch op {
		case opInsert:
			if _, err := e.store.Add(ctx, store.CollectionNotifications, merged); err != nil {
				log.Warn("inserting notification", "key", merged.Key, "error", err)
				continue
			}
			inserted++
		case opUpdate:
			if _, err := e.store.Update(ctx, store.CollectionNotifications, merged.ID, merged); err != nil {
				log.Warn("updating notification", "key", merged.Key, "error", err)
				continue
			}
			updated++
		}
	}

	e.sweepAll(ctx, log, now, settings)

	log.Info("sync complete",
		"facts", len(drafts),
		"inserted", inserted,
		"updated", updated,
	)
	return nil
}

// loadCalendarEvents reads the calendar collection. Undecodable entries
// are skipped individually; a collection read failure is returned so the
// caller can skip every calendar-driven category for this run.
func (e *Engine) loadCalendarEvents(ctx context.Context, log *slog.Logger) ([]model.CalendarEvent, error) {
	recs, err := e.store.Get(ctx, store.CollectionCalendarEvents)
	if err != nil {
		return nil, fmt.Errorf("loading calendar events: %w", err)
	}

	events := make([]model.CalendarEvent, 0, len(recs))
	for _, rec := range recs {
		ev, err := store.Decode[model.CalendarEvent](rec)
		if err != nil {
			log.Warn("skipping undecodable calendar event", "id", rec.ID, "error", err)
			continue
		}
		ev.ID = rec.ID
		events = append(events, ev)
	}
	return events, nil
}

// loadTechnicians reads the technician roster. A read failure is
// returned so the caller can skip the schedule-change category and hold
// the digest for this run.
func (e *Engine) loadTechnicians(ctx context.Context, log *slog.Logger) ([]model.Technician, error) {
	recs, err := e.store.Get(ctx, store.CollectionTechnicians)
	if err != nil {
		return nil, fmt.Errorf("loading technicians: %w", err)
	}

	technicians := make([]model.Technician, 0, len(recs))
	for _, rec := range recs {
		tech, err := store.Decode[model.Technician](rec)
		if err != nil {
			log.Warn("skipping undecodable technician", "id", rec.ID, "error", err)
			continue
		}
		tech.ID = rec.ID
		technicians = append(technicians, tech)
	}
	return technicians, nil
}
