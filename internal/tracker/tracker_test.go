package tracker_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielcpolitano/ponto/internal/model"
	"github.com/gabrielcpolitano/ponto/internal/store"
	"github.com/gabrielcpolitano/ponto/internal/timeutil"
	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

// fakeClock is a settable clock for tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker(t *testing.T, now time.Time) (*tracker.Tracker, *fakeClock) {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	clock := &fakeClock{now: now}
	return tracker.New(s, clock), clock
}

// Friday 2026-02-27, 09:00 local.
var friday9am = time.Date(2026, 2, 27, 9, 0, 0, 0, time.UTC)

func TestClockInOutDuration(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	session, err := tr.ClockIn()
	require.NoError(t, err)
	assert.Equal(t, model.SessionActive, session.Status)
	assert.NotEmpty(t, session.ID)
	assert.Nil(t, session.EndTime)

	clock.Advance(90 * time.Minute)
	done, err := tr.ClockOut()
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, done.Status)
	assert.Equal(t, 90, done.DurationMinutes)
	require.NotNil(t, done.EndTime)

	rec, err := tr.DayRecord("2026-02-27")
	require.NoError(t, err)
	assert.Equal(t, 90, rec.TotalMinutes)
	assert.False(t, rec.GoalMet, "90 minutes must not meet the 180-minute goal")
}

func TestClockOutFloorsPartialMinutes(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)

	clock.Advance(90*time.Minute + 59*time.Second)
	done, err := tr.ClockOut()
	require.NoError(t, err)
	assert.Equal(t, 90, done.DurationMinutes, "duration must floor, not round")
}

func TestClockOutClampsBackwardsClock(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)

	clock.Advance(-10 * time.Minute)
	done, err := tr.ClockOut()
	require.NoError(t, err)
	assert.Equal(t, 0, done.DurationMinutes, "a session never has negative length")
}

func TestClockInRejectsSecondActiveSession(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)

	_, err = tr.ClockIn()
	assert.ErrorIs(t, err, tracker.ErrAlreadyClockedIn)

	rec, err := tr.DayRecord("2026-02-27")
	require.NoError(t, err)
	assert.Len(t, rec.Sessions, 1, "rejected clock-in must not persist a session")
}

func TestClockOutWithNothingActive(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	_, err := tr.ClockOut()
	assert.ErrorIs(t, err, tracker.ErrNoActiveSession)
}

func TestTwoSessionsMeetGoal(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(100 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	_, err = tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(90 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)

	rec, err := tr.DayRecord("2026-02-27")
	require.NoError(t, err)
	assert.Equal(t, 190, rec.TotalMinutes)
	assert.True(t, rec.GoalMet)
}

func TestEndWorkdayClosesActiveSession(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(60 * time.Minute)

	rec, err := tr.EndWorkday()
	require.NoError(t, err)
	assert.True(t, rec.WorkdayClosed)
	require.Len(t, rec.Sessions, 1)
	assert.Equal(t, model.SessionCompleted, rec.Sessions[0].Status)
	assert.Equal(t, 60, rec.TotalMinutes)
}

func TestEndWorkdayIdempotent(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(45 * time.Minute)

	first, err := tr.EndWorkday()
	require.NoError(t, err)

	second, err := tr.EndWorkday()
	require.NoError(t, err)
	assert.Equal(t, first, second, "closing an already-closed day must not change it")
}

func TestDayRecordRoundTrip(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)

	before, err := tr.DayRecord("2026-02-27")
	require.NoError(t, err)
	again, err := tr.DayRecord("2026-02-27")
	require.NoError(t, err)
	assert.Equal(t, before, again)
}

func TestDayRecordDefaultsWhenAbsent(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	rec, err := tr.DayRecord("2026-02-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-20", rec.Date)
	assert.Empty(t, rec.Sessions)
	assert.Zero(t, rec.TotalMinutes)
	assert.False(t, rec.GoalMet)
	assert.False(t, rec.WorkdayClosed)
	assert.Nil(t, rec.Justification)
}

func TestSubmitAbsenceJustification(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	rec, err := tr.SubmitAbsenceJustification("2026-02-26", "traveled")
	require.NoError(t, err)
	assert.Empty(t, rec.Sessions)
	assert.Zero(t, rec.TotalMinutes)
	assert.False(t, rec.GoalMet)
	assert.True(t, rec.WorkdayClosed)
	require.NotNil(t, rec.Justification)
	assert.Equal(t, "traveled", *rec.Justification)

	// Persisted and reloadable.
	loaded, err := tr.DayRecord("2026-02-26")
	require.NoError(t, err)
	assert.Equal(t, rec, loaded)
}

func TestSubmitAbsenceJustificationRejectsEmptyText(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	_, err := tr.SubmitAbsenceJustification("2026-02-26", "   ")
	var verr *tracker.ValidationError
	assert.ErrorAs(t, err, &verr)

	// No-op: no record was created.
	rec, err := tr.DayRecord("2026-02-26")
	require.NoError(t, err)
	assert.False(t, rec.WorkdayClosed)
	assert.Nil(t, rec.Justification)
}

func TestSubmitAbsenceJustificationRejectsBadDate(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	_, err := tr.SubmitAbsenceJustification("26/02/2026", "traveled")
	var verr *tracker.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCheckForAbsenceSkipsWeekend(t *testing.T) {
	// Monday: yesterday is Sunday, never an absence.
	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tr, _ := newTestTracker(t, monday)

	_, pending, err := tr.CheckForAbsence()
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestCheckForAbsenceFindsEmptyWeekday(t *testing.T) {
	// Saturday: yesterday is Friday with no record.
	saturday := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	tr, _ := newTestTracker(t, saturday)

	date, pending, err := tr.CheckForAbsence()
	require.NoError(t, err)
	assert.True(t, pending)
	assert.Equal(t, "2026-02-27", date)
}

func TestCheckForAbsenceAcceptsJustifiedDay(t *testing.T) {
	saturday := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	tr, _ := newTestTracker(t, saturday)

	_, err := tr.SubmitAbsenceJustification("2026-02-27", "sick leave")
	require.NoError(t, err)

	_, pending, err := tr.CheckForAbsence()
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestCheckForAbsenceAcceptsWorkedDay(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)

	// Next day (Saturday): Friday has sessions, nothing pending.
	clock.Advance(24 * time.Hour)
	_, pending, err := tr.CheckForAbsence()
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestWeeklyHistoryShape(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	history, err := tr.WeeklyHistory()
	require.NoError(t, err)
	require.Len(t, history, 7)
	assert.Equal(t, "2026-02-21", history[0].Date)
	assert.Equal(t, "2026-02-27", history[6].Date)
	for i := 1; i < len(history); i++ {
		assert.Less(t, history[i-1].Date, history[i].Date)
	}
}

func TestWeeklyHistoryStatuses(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	// Wednesday: goal met.
	clock.now = friday9am.AddDate(0, 0, -2)
	_, err := tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(200 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)
	_, err = tr.EndWorkday()
	require.NoError(t, err)

	// Thursday: partial.
	clock.now = friday9am.AddDate(0, 0, -1)
	_, err = tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)
	_, err = tr.EndWorkday()
	require.NoError(t, err)

	// Friday (today): open workday.
	clock.now = friday9am

	history, err := tr.WeeklyHistory()
	require.NoError(t, err)
	require.Len(t, history, 7)

	byDate := map[string]model.WeeklyHistoryItem{}
	for _, item := range history {
		byDate[item.Date] = item
	}
	assert.Equal(t, model.StatusGoal, byDate["2026-02-25"].Status)
	assert.Equal(t, model.StatusPartial, byDate["2026-02-26"].Status)
	assert.Equal(t, model.StatusInProgress, byDate["2026-02-27"].Status)
	assert.Equal(t, model.StatusAbsence, byDate["2026-02-24"].Status)
}

func TestWeeklyHistoryCarriesJustification(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	_, err := tr.SubmitAbsenceJustification("2026-02-25", "traveled")
	require.NoError(t, err)

	history, err := tr.WeeklyHistory()
	require.NoError(t, err)
	for _, item := range history {
		if item.Date == "2026-02-25" {
			assert.Equal(t, model.StatusAbsence, item.Status)
			require.NotNil(t, item.Justification)
			assert.Equal(t, "traveled", *item.Justification)
			return
		}
	}
	t.Fatal("2026-02-25 missing from history")
}

func TestStreakCount(t *testing.T) {
	mk := func(statuses ...model.DayStatus) []model.WeeklyHistoryItem {
		items := make([]model.WeeklyHistoryItem, len(statuses))
		for i, s := range statuses {
			items[i] = model.WeeklyHistoryItem{Status: s}
		}
		return items
	}

	tests := []struct {
		name    string
		history []model.WeeklyHistoryItem
		want    int
	}{
		{"partial then three goals", mk(model.StatusPartial, model.StatusGoal, model.StatusGoal, model.StatusGoal), 3},
		{"broken by most recent", mk(model.StatusGoal, model.StatusGoal, model.StatusAbsence), 0},
		{"in-progress extends streak", mk(model.StatusGoal, model.StatusInProgress), 2},
		{"empty", nil, 0},
		{"all goals", mk(model.StatusGoal, model.StatusGoal), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tracker.StreakCount(tt.history))
		})
	}
}

func TestGoalProgress(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	assert.Equal(t, 0, tr.GoalProgress(0))
	assert.Equal(t, 50, tr.GoalProgress(90))
	assert.Equal(t, 100, tr.GoalProgress(180))
	assert.Equal(t, 100, tr.GoalProgress(400), "progress is capped at 100")
}

func TestActiveSessionElapsedOnDemand(t *testing.T) {
	tr, clock := newTestTracker(t, friday9am)

	started, err := tr.ClockIn()
	require.NoError(t, err)

	clock.Advance(17 * time.Minute)
	active, err := tr.ActiveSession()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, started.ID, active.ID)
	// Elapsed time is derived from now - startTime, never persisted.
	assert.Equal(t, 17*time.Minute, clock.Now().Sub(active.StartTime))
	assert.Zero(t, active.DurationMinutes)
}

func TestLoginLogout(t *testing.T) {
	tr, _ := newTestTracker(t, friday9am)

	user, err := tr.Login("gabriel")
	require.NoError(t, err)
	assert.Equal(t, "gabriel", user.Name)
	assert.Equal(t, friday9am, user.LoginDate)

	current, ok, err := tr.CurrentUser()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gabriel", current.Name)

	require.NoError(t, tr.Logout())

	_, ok, err = tr.CurrentUser()
	require.NoError(t, err)
	assert.False(t, ok)

	// The last name survives logout.
	last, ok, err := tr.LastUserName()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gabriel", last)
}

func TestTrackerWorksOnSQLiteStore(t *testing.T) {
	s, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := &fakeClock{now: friday9am}
	tr := tracker.New(s, clock)

	_, err = tr.ClockIn()
	require.NoError(t, err)
	clock.Advance(200 * time.Minute)
	_, err = tr.ClockOut()
	require.NoError(t, err)

	rec, err := tr.DayRecord(timeutil.DateKey(friday9am))
	require.NoError(t, err)
	assert.Equal(t, 200, rec.TotalMinutes)
	assert.True(t, rec.GoalMet)
}

func TestCorruptDayRecordSurfacesError(t *testing.T) {
	s, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Set(tracker.DayKey("2026-02-27"), []byte("{bad json")))

	tr := tracker.New(s, &fakeClock{now: friday9am})
	_, err = tr.DayRecord("2026-02-27")
	assert.Error(t, err, "corrupt data is a hard failure, not a default record")
}
