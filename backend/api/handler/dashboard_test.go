package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"study-hub/backend/model"

	"github.com/stretchr/testify/assert"
)

type dashboardStatsResponse struct {
	StudyTime struct {
		Today    float64 `json:"today"`
		ThisWeek float64 `json:"this_week"`
	} `json:"study_time"`
	Tasks struct {
		Completed int `json:"completed"`
		Remaining int `json:"remaining"`
	} `json:"tasks"`
	UpcomingTasks []struct {
		ID    int64 `json:"id"`
		DueIn int64 `json:"due_in"`
	} `json:"upcoming_tasks"`
}

// pinClock fixes the model clock to a Wednesday evening so day and week
// windows are stable regardless of when the test runs.
func pinClock(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2026, time.August, 26, 20, 0, 0, 0, time.Local)
	original := model.NowMillis
	model.NowMillis = func() int64 { return now.UnixMilli() }
	t.Cleanup(func() { model.NowMillis = original })
	return now
}

func getDashboard(t *testing.T, userID int64) dashboardStatsResponse {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/api/dashboard", nil)
	assert.NoError(t, err)
	c, recorder := newTestContext(t, userID, req)

	GetDashboardStats(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeAPIResponse(t, recorder)
	assert.True(t, resp.Success)
	var stats dashboardStatsResponse
	err = json.Unmarshal(resp.Data, &stats)
	assert.NoError(t, err)
	return stats
}

func TestDashboardStatsEmpty(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")

	stats := getDashboard(t, alice.ID)
	assert.Zero(t, stats.StudyTime.Today)
	assert.Zero(t, stats.StudyTime.ThisWeek)
	assert.Zero(t, stats.Tasks.Completed)
	assert.Zero(t, stats.Tasks.Remaining)
	assert.Empty(t, stats.UpcomingTasks)
}

func TestDashboardStatsAggregation(t *testing.T) {
	setupHandlerTest(t)
	now := pinClock(t)
	alice := createTestUser(t, "alice")

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Completed one-hour session this morning counts for today and the week.
	morning := &model.Task{
		UserID:    alice.ID,
		Title:     "read chapter 4",
		Type:      "study",
		StartTime: startOfDay.Add(9 * time.Hour).UnixMilli(),
		EndTime:   startOfDay.Add(10 * time.Hour).UnixMilli(),
		Completed: true,
	}
	assert.NoError(t, morning.Insert())

	// Completed half hour on Monday counts for the week only.
	monday := &model.Task{
		UserID:    alice.ID,
		Title:     "flashcards",
		Type:      "study",
		StartTime: startOfDay.AddDate(0, 0, -2).Add(18 * time.Hour).UnixMilli(),
		EndTime:   startOfDay.AddDate(0, 0, -2).Add(18*time.Hour + 30*time.Minute).UnixMilli(),
		Completed: true,
	}
	assert.NoError(t, monday.Insert())

	// Pending task due in two days shows up both as remaining and upcoming.
	pending := &model.Task{
		UserID:    alice.ID,
		Title:     "essay draft",
		Type:      "assignment",
		StartTime: now.UnixMilli(),
		EndTime:   now.Add(48 * time.Hour).UnixMilli(),
	}
	assert.NoError(t, pending.Insert())

	stats := getDashboard(t, alice.ID)
	assert.InDelta(t, 60.0, stats.StudyTime.Today, 0.01)
	assert.InDelta(t, 90.0, stats.StudyTime.ThisWeek, 0.01)
	assert.Equal(t, 1, stats.Tasks.Completed)
	assert.Equal(t, 1, stats.Tasks.Remaining)
	assert.Len(t, stats.UpcomingTasks, 1)
	assert.Equal(t, pending.ID, stats.UpcomingTasks[0].ID)
	assert.Equal(t, int64(2), stats.UpcomingTasks[0].DueIn)
}

func TestDashboardStatsIgnoresOtherUsers(t *testing.T) {
	setupHandlerTest(t)
	now := pinClock(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	task := &model.Task{
		UserID:    bob.ID,
		Title:     "bob's session",
		Type:      "study",
		StartTime: now.Add(-time.Hour).UnixMilli(),
		EndTime:   now.UnixMilli(),
		Completed: true,
	}
	assert.NoError(t, task.Insert())

	stats := getDashboard(t, alice.ID)
	assert.Zero(t, stats.StudyTime.ThisWeek)
	assert.Zero(t, stats.Tasks.Completed)
}

func TestDashboardStatsAnonymous(t *testing.T) {
	setupHandlerTest(t)

	req, err := http.NewRequest(http.MethodGet, "/api/dashboard", nil)
	assert.NoError(t, err)
	c, recorder := newTestContext(t, 0, req)

	GetDashboardStats(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeAPIResponse(t, recorder)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Data)
}
