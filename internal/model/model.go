package model

import "time"

// SessionStatus is the lifecycle state of a WorkSession.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// DayStatus classifies a day in the weekly history.
type DayStatus string

const (
	StatusGoal       DayStatus = "goal"
	StatusPartial    DayStatus = "partial"
	StatusAbsence    DayStatus = "absence"
	StatusInProgress DayStatus = "in-progress"
)

// User is the locally logged-in user.
type User struct {
	Name      string    `json:"name"`
	LoginDate time.Time `json:"loginDate"`
}

// WorkSession is one contiguous clocked-in interval. An active session has
// no end time; a completed session has both times and a fixed duration.
type WorkSession struct {
	ID              string        `json:"id"`
	StartTime       time.Time     `json:"startTime"`
	EndTime         *time.Time    `json:"endTime,omitempty"`
	DurationMinutes int           `json:"durationMinutes"`
	Status          SessionStatus `json:"status"`
}

// DayRecord is the set of sessions for one calendar date, keyed by the ISO
// date string. History is append-only; records are never deleted.
type DayRecord struct {
	Date          string        `json:"date"`
	Sessions      []WorkSession `json:"sessions"`
	TotalMinutes  int           `json:"totalMinutes"`
	GoalMet       bool          `json:"goalMet"`
	WorkdayClosed bool          `json:"workdayClosed"`
	Justification *string       `json:"justification,omitempty"`
}

// NewDayRecord returns the default empty record for a date. Absence of data
// is a valid state, not an error.
func NewDayRecord(date string) DayRecord {
	return DayRecord{Date: date, Sessions: []WorkSession{}}
}

// ActiveSession returns a pointer to the first active session, or nil.
func (d *DayRecord) ActiveSession() *WorkSession {
	for i := range d.Sessions {
		if d.Sessions[i].Status == SessionActive {
			return &d.Sessions[i]
		}
	}
	return nil
}

// Recompute fixes TotalMinutes and GoalMet from the completed sessions.
// Active sessions never contribute; their elapsed time is derived on demand.
func (d *DayRecord) Recompute(goalMinutes int) {
	total := 0
	for _, s := range d.Sessions {
		if s.Status == SessionCompleted {
			total += s.DurationMinutes
		}
	}
	d.TotalMinutes = total
	d.GoalMet = total >= goalMinutes
}

// WeeklyHistoryItem is a derived, non-persisted view of one day in the
// trailing week.
type WeeklyHistoryItem struct {
	Date          string    `json:"date"`
	TotalMinutes  int       `json:"totalMinutes"`
	Status        DayStatus `json:"status"`
	Justification *string   `json:"justification,omitempty"`
}
