package model

import "time"

// Defaults for NotificationSettings. A missing or malformed field falls
// back to these at load and save time.
const (
	DefaultConsultationLeadMinutes    = 60
	DefaultEventLeadMinutes           = 60
	DefaultPartsDeliveryLookaheadDays = 3
	DefaultKeepUnreadDays             = 30
	DefaultPurgeReadAfterDays         = 14
	DefaultDailyDigestTime            = "08:00"
	DefaultQuietHoursStart            = "21:00"
	DefaultQuietHoursEnd              = "07:00"
)

// NotificationSettings is the singleton configuration record controlling
// every notification rule's thresholds and toggles.
type NotificationSettings struct {
	ID int64 `json:"id"`

	ConsultationsEnabled        bool `json:"consultationsEnabled"`
	PartsDeliveryEnabled        bool `json:"partsDeliveryEnabled"`
	IncludeOverduePartsDelivery bool `json:"includeOverduePartsDelivery"`
	EventsEnabled               bool `json:"eventsEnabled"`
	TechScheduleChangesEnabled  bool `json:"techScheduleChangesEnabled"`
	DailyDigestEnabled          bool `json:"dailyDigestEnabled"`
	DailyDigestOnOpen           bool `json:"dailyDigestOnOpen"`

	ConsultationLeadMinutes    int `json:"consultationLeadMinutes"`
	EventLeadMinutes           int `json:"eventLeadMinutes"`
	PartsDeliveryLookaheadDays int `json:"partsDeliveryLookaheadDays"`
	KeepUnreadDays             int `json:"keepUnreadDays"`
	PurgeReadAfterDays         int `json:"purgeReadAfterDays"`

	// DailyDigestTimeLocal is the HH:mm local time after which the daily
	// digest becomes due.
	DailyDigestTimeLocal string `json:"dailyDigestTimeLocal"`

	// Quiet hours are persisted and round-tripped but do not currently
	// gate notification generation; see DESIGN.md.
	QuietHoursEnabled    bool   `json:"quietHoursEnabled"`
	QuietHoursStartLocal string `json:"quietHoursStartLocal"`
	QuietHoursEndLocal   string `json:"quietHoursEndLocal"`
}

// DefaultNotificationSettings returns the schema defaults used when no
// settings record exists yet.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		ConsultationsEnabled:        true,
		PartsDeliveryEnabled:        true,
		IncludeOverduePartsDelivery: true,
		EventsEnabled:               true,
		TechScheduleChangesEnabled:  true,
		DailyDigestEnabled:          true,
		DailyDigestOnOpen:           false,
		ConsultationLeadMinutes:     DefaultConsultationLeadMinutes,
		EventLeadMinutes:            DefaultEventLeadMinutes,
		PartsDeliveryLookaheadDays:  DefaultPartsDeliveryLookaheadDays,
		KeepUnreadDays:              DefaultKeepUnreadDays,
		PurgeReadAfterDays:          DefaultPurgeReadAfterDays,
		DailyDigestTimeLocal:        DefaultDailyDigestTime,
		QuietHoursEnabled:           false,
		QuietHoursStartLocal:        DefaultQuietHoursStart,
		QuietHoursEndLocal:          DefaultQuietHoursEnd,
	}
}

// Normalize clamps every numeric window to its documented range and
// resets malformed HH:mm strings to their defaults. Applied on every load
// and save so a bad record can never fail a sync.
func (s *NotificationSettings) Normalize() {
	s.ConsultationLeadMinutes = clampInt(s.ConsultationLeadMinutes, 0, 1440, DefaultConsultationLeadMinutes)
	s.EventLeadMinutes = clampInt(s.EventLeadMinutes, 0, 1440, DefaultEventLeadMinutes)
	s.PartsDeliveryLookaheadDays = clampInt(s.PartsDeliveryLookaheadDays, 0, 365, DefaultPartsDeliveryLookaheadDays)
	s.KeepUnreadDays = clampInt(s.KeepUnreadDays, 1, 365, DefaultKeepUnreadDays)
	s.PurgeReadAfterDays = clampInt(s.PurgeReadAfterDays, 0, 365, DefaultPurgeReadAfterDays)
	s.DailyDigestTimeLocal = normalizeClock(s.DailyDigestTimeLocal, DefaultDailyDigestTime)
	s.QuietHoursStartLocal = normalizeClock(s.QuietHoursStartLocal, DefaultQuietHoursStart)
	s.QuietHoursEndLocal = normalizeClock(s.QuietHoursEndLocal, DefaultQuietHoursEnd)
}

// clampInt pins v into [min, max], falling back to def when v is outside
// the range in a way that suggests an unset or corrupt value.
func clampInt(v, min, max, def int) int {
	if v < min {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// normalizeClock parses an HH:mm string and re-renders it zero-padded.
// Malformed input falls back to def.
func normalizeClock(v, def string) string {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return def
	}
	return t.Format("15:04")
}
