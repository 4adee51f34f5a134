package remote

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gabrielcpolitano/ponto/internal/model"
	"github.com/gabrielcpolitano/ponto/internal/store"
	"github.com/gabrielcpolitano/ponto/internal/tracker"
)

// SessionRecord is a work session flattened with its date and user for the
// remote sessions collection.
type SessionRecord struct {
	ID              string     `json:"id"`
	User            string     `json:"userId"`
	Date            string     `json:"date"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Status          string     `json:"status"`
}

// WorkdayRecord summarises one day for the remote workdays collection.
type WorkdayRecord struct {
	Date          string `json:"date"`
	TotalMinutes  int    `json:"totalMinutes"`
	GoalMet       bool   `json:"goalMet"`
	WorkdayClosed bool   `json:"workdayClosed"`
}

// JustificationRecord is a justified absence.
type JustificationRecord struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

// SettingsRecord carries the app settings.
type SettingsRecord struct {
	ID               string `json:"id"`
	DailyGoalMinutes int    `json:"dailyGoalMinutes"`
}

// Metadata describes a snapshot.
type Metadata struct {
	Version     string    `json:"version"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Snapshot is the full replicated state: the five collections plus metadata.
type Snapshot struct {
	Users          []model.User          `json:"users"`
	Sessions       []SessionRecord       `json:"sessions"`
	Workdays       []WorkdayRecord       `json:"workdays"`
	Justifications []JustificationRecord `json:"justifications"`
	Settings       []SettingsRecord      `json:"settings"`
	Metadata       Metadata              `json:"metadata"`
}

// Build assembles a snapshot from everything in the store.
func Build(st store.Store, goalMinutes int, now time.Time) (Snapshot, error) {
	snap := Snapshot{
		Users:          []model.User{},
		Sessions:       []SessionRecord{},
		Workdays:       []WorkdayRecord{},
		Justifications: []JustificationRecord{},
		Settings: []SettingsRecord{
			{ID: "app_settings", DailyGoalMinutes: goalMinutes},
		},
		Metadata: Metadata{Version: "1.0", LastUpdated: now},
	}

	userName := ""
	if data, ok, err := st.Get("user"); err != nil {
		return Snapshot{}, err
	} else if ok {
		var user model.User
		if err := json.Unmarshal(data, &user); err != nil {
			return Snapshot{}, fmt.Errorf("corrupt user record: %w", err)
		}
		snap.Users = append(snap.Users, user)
		userName = user.Name
	}

	keys, err := st.Keys("day:")
	if err != nil {
		return Snapshot{}, err
	}
	for _, key := range keys {
		data, ok, err := st.Get(key)
		if err != nil {
			return Snapshot{}, err
		}
		if !ok {
			continue
		}
		var rec model.DayRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return Snapshot{}, fmt.Errorf("corrupt day record %s: %w", key, err)
		}
		if rec.Date == "" {
			rec.Date = strings.TrimPrefix(key, "day:")
		}

		snap.Workdays = append(snap.Workdays, WorkdayRecord{
			Date:          rec.Date,
			TotalMinutes:  rec.TotalMinutes,
			GoalMet:       rec.GoalMet,
			WorkdayClosed: rec.WorkdayClosed,
		})
		for _, s := range rec.Sessions {
			snap.Sessions = append(snap.Sessions, SessionRecord{
				ID:              s.ID,
				User:            userName,
				Date:            rec.Date,
				StartTime:       s.StartTime,
				EndTime:         s.EndTime,
				DurationMinutes: s.DurationMinutes,
				Status:          string(s.Status),
			})
		}
		if rec.Justification != nil {
			snap.Justifications = append(snap.Justifications, JustificationRecord{
				Date: rec.Date,
				Text: *rec.Justification,
			})
		}
	}
	return snap, nil
}

// Apply writes the snapshot's day records back into the store, rebuilding
// each DayRecord from the workdays, sessions and justifications collections.
// It returns the number of days written.
func Apply(st store.Store, snap Snapshot) (int, error) {
	sessionsByDate := map[string][]model.WorkSession{}
	for _, s := range snap.Sessions {
		sessionsByDate[s.Date] = append(sessionsByDate[s.Date], model.WorkSession{
			ID:              s.ID,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			Status:          model.SessionStatus(s.Status),
		})
	}
	justByDate := map[string]string{}
	for _, j := range snap.Justifications {
		justByDate[j.Date] = j.Text
	}

	written := 0
	for _, wd := range snap.Workdays {
		rec := model.NewDayRecord(wd.Date)
		if sessions := sessionsByDate[wd.Date]; sessions != nil {
			rec.Sessions = sessions
		}
		rec.TotalMinutes = wd.TotalMinutes
		rec.GoalMet = wd.GoalMet
		rec.WorkdayClosed = wd.WorkdayClosed
		if text, ok := justByDate[wd.Date]; ok {
			rec.Justification = &text
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return written, fmt.Errorf("encoding day record %s: %w", wd.Date, err)
		}
		if err := st.Set(tracker.DayKey(wd.Date), data); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
