// Package tracker implements the time-tracking model: work sessions, day
// records, the daily goal, weekly history and absence justifications. The
// tracker owns no ambient state; it is constructed with an explicit store
// and clock and recomputes every derived value from persisted instants.
package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gabrielcpolitano/ponto/internal/model"
	"github.com/gabrielcpolitano/ponto/internal/store"
	"github.com/gabrielcpolitano/ponto/internal/timeutil"
)

// DefaultGoalMinutes is the 3-hour daily target.
const DefaultGoalMinutes = 180

const (
	dayKeyPrefix = "day:"
	userKey      = "user"
	lastUserKey  = "user:last"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Tracker is the time-tracking model over an injected store and clock.
type Tracker struct {
	store store.Store
	clock Clock
	goal  int
}

// New creates a Tracker with the default 180-minute goal.
func New(s store.Store, c Clock) *Tracker {
	return NewWithGoal(s, c, DefaultGoalMinutes)
}

// NewWithGoal creates a Tracker with a custom daily goal in minutes.
func NewWithGoal(s store.Store, c Clock, goalMinutes int) *Tracker {
	if goalMinutes <= 0 {
		goalMinutes = DefaultGoalMinutes
	}
	return &Tracker{store: s, clock: c, goal: goalMinutes}
}

// GoalMinutes returns the daily goal.
func (t *Tracker) GoalMinutes() int { return t.goal }

// DayKey returns the storage key for an ISO date.
func DayKey(date string) string { return dayKeyPrefix + date }

// DayRecord returns the persisted record for date, or a fresh default
// record if none exists. Absence of data is a valid state, not an error.
func (t *Tracker) DayRecord(date string) (model.DayRecord, error) {
	data, ok, err := t.store.Get(DayKey(date))
	if err != nil {
		return model.DayRecord{}, err
	}
	if !ok {
		return model.NewDayRecord(date), nil
	}
	var rec model.DayRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.DayRecord{}, fmt.Errorf("corrupt day record %s: %w", date, err)
	}
	if rec.Sessions == nil {
		rec.Sessions = []model.WorkSession{}
	}
	return rec, nil
}

func (t *Tracker) saveDay(rec model.DayRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding day record %s: %w", rec.Date, err)
	}
	return t.store.Set(DayKey(rec.Date), data)
}

// ClockIn opens a new active session on today's record. At most one session
// may be active at a time; a second clock-in is rejected.
func (t *Tracker) ClockIn() (model.WorkSession, error) {
	now := t.clock.Now()
	rec, err := t.DayRecord(timeutil.DateKey(now))
	if err != nil {
		return model.WorkSession{}, err
	}
	if rec.ActiveSession() != nil {
		return model.WorkSession{}, ErrAlreadyClockedIn
	}

	session := model.WorkSession{
		ID:        uuid.NewString(),
		StartTime: now,
		Status:    model.SessionActive,
	}
	rec.Sessions = append(rec.Sessions, session)
	if err := t.saveDay(rec); err != nil {
		return model.WorkSession{}, err
	}
	return session, nil
}

// ClockOut completes today's active session and recomputes the day totals.
// With nothing active it returns ErrNoActiveSession, a benign condition.
func (t *Tracker) ClockOut() (model.WorkSession, error) {
	now := t.clock.Now()
	rec, err := t.DayRecord(timeutil.DateKey(now))
	if err != nil {
		return model.WorkSession{}, err
	}
	active := rec.ActiveSession()
	if active == nil {
		return model.WorkSession{}, ErrNoActiveSession
	}

	end := now
	minutes := int(end.Sub(active.StartTime).Milliseconds() / 60000)
	if minutes < 0 {
		// The clock may step backwards; a session never has negative length.
		minutes = 0
	}
	active.EndTime = &end
	active.DurationMinutes = minutes
	active.Status = model.SessionCompleted
	rec.Recompute(t.goal)

	if err := t.saveDay(rec); err != nil {
		return model.WorkSession{}, err
	}
	return *active, nil
}

// EndWorkday closes today's record, completing any active session first so
// none is left dangling. Calling it on an already-closed day is idempotent.
func (t *Tracker) EndWorkday() (model.DayRecord, error) {
	if _, err := t.ClockOut(); err != nil && err != ErrNoActiveSession {
		return model.DayRecord{}, err
	}
	rec, err := t.DayRecord(timeutil.DateKey(t.clock.Now()))
	if err != nil {
		return model.DayRecord{}, err
	}
	rec.WorkdayClosed = true
	if err := t.saveDay(rec); err != nil {
		return model.DayRecord{}, err
	}
	return rec, nil
}

// SubmitAbsenceJustification records a justification for date, replacing
// any existing record. Empty text after trimming is rejected.
func (t *Tracker) SubmitAbsenceJustification(date, text string) (model.DayRecord, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.DayRecord{}, &ValidationError{Msg: "justification text must not be empty"}
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return model.DayRecord{}, &ValidationError{Msg: err.Error()}
	}

	rec := model.NewDayRecord(date)
	rec.WorkdayClosed = true
	rec.Justification = &text
	if err := t.saveDay(rec); err != nil {
		return model.DayRecord{}, err
	}
	return rec, nil
}

// CheckForAbsence examines the calendar date immediately before today.
// Weekends are never absences. A weekday with no sessions and no
// justification is returned as pending. Intended to run once per login.
func (t *Tracker) CheckForAbsence() (string, bool, error) {
	yesterday := timeutil.StartOfDay(t.clock.Now()).AddDate(0, 0, -1)
	if timeutil.IsWeekend(yesterday) {
		return "", false, nil
	}
	rec, err := t.DayRecord(timeutil.DateKey(yesterday))
	if err != nil {
		return "", false, err
	}
	if len(rec.Sessions) == 0 && rec.Justification == nil {
		return rec.Date, true, nil
	}
	return "", false, nil
}

// WeeklyHistory derives the status of the trailing 7 calendar days, oldest
// first and ending at today.
func (t *Tracker) WeeklyHistory() ([]model.WeeklyHistoryItem, error) {
	now := t.clock.Now()
	today := timeutil.DateKey(now)

	items := make([]model.WeeklyHistoryItem, 0, 7)
	for _, date := range timeutil.WeekDates(now, 7) {
		rec, err := t.DayRecord(date)
		if err != nil {
			return nil, err
		}

		status := model.StatusAbsence
		switch {
		case date == today && !rec.WorkdayClosed:
			status = model.StatusInProgress
		case rec.GoalMet:
			status = model.StatusGoal
		case rec.TotalMinutes > 0:
			status = model.StatusPartial
		}

		items = append(items, model.WeeklyHistoryItem{
			Date:          date,
			TotalMinutes:  rec.TotalMinutes,
			Status:        status,
			Justification: rec.Justification,
		})
	}
	return items, nil
}

// StreakCount counts consecutive trailing days whose status is goal or
// in-progress, scanning the history from the most recent day backwards.
func StreakCount(history []model.WeeklyHistoryItem) int {
	streak := 0
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i].Status
		if s != model.StatusGoal && s != model.StatusInProgress {
			break
		}
		streak++
	}
	return streak
}

// GoalProgress returns the percentage of the daily goal reached, capped
// at 100.
func (t *Tracker) GoalProgress(totalMinutes int) int {
	pct := totalMinutes * 100 / t.goal
	if pct > 100 {
		pct = 100
	}
	return pct
}

// ActiveSession returns today's active session, or nil.
func (t *Tracker) ActiveSession() (*model.WorkSession, error) {
	rec, err := t.DayRecord(timeutil.DateKey(t.clock.Now()))
	if err != nil {
		return nil, err
	}
	return rec.ActiveSession(), nil
}
