package model

import "time"

// DaySchedule is one technician's working hours for a single weekday.
type DaySchedule struct {
	// Start and End are local times of day, HH:mm.
	Start string `json:"start"`
	End   string `json:"end"`

	// Off marks the day as not worked; Start and End are ignored.
	Off bool `json:"off"`
}

// Label renders the day for display: "Off" or "start-end".
func (d DaySchedule) Label() string {
	if d.Off || d.Start == "" || d.End == "" {
		return "Off"
	}
	return d.Start + "-" + d.End
}

// WeekSchedule holds a technician's recurring weekly hours.
type WeekSchedule struct {
	Mon DaySchedule `json:"mon"`
	Tue DaySchedule `json:"tue"`
	Wed DaySchedule `json:"wed"`
	Thu DaySchedule `json:"thu"`
	Fri DaySchedule `json:"fri"`
	Sat DaySchedule `json:"sat"`
	Sun DaySchedule `json:"sun"`
}

// Day returns the schedule entry for the given weekday.
func (w WeekSchedule) Day(d time.Weekday) DaySchedule {
	switch d {
	case time.Monday:
		return w.Mon
	case time.Tuesday:
		return w.Tue
	case time.Wednesday:
		return w.Wed
	case time.Thursday:
		return w.Thu
	case time.Friday:
		return w.Fri
	case time.Saturday:
		return w.Sat
	default:
		return w.Sun
	}
}

// Technician is a member of the shop roster. Read-only to the engine.
type Technician struct {
	// ID is the store-assigned identifier.
	ID int64 `json:"id"`

	// Name is the display name shown in rosters and digests.
	Name string `json:"name"`

	// Schedule is the recurring weekly schedule.
	Schedule WeekSchedule `json:"schedule"`
}

// ScheduleFingerprint records the last-seen hash of a technician's weekly
// schedule, so later runs can detect changes without a spurious alert the
// first time a technician is observed.
type ScheduleFingerprint struct {
	ID           int64     `json:"id"`
	TechnicianID int64     `json:"technicianId"`
	Hash         string    `json:"hash"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
