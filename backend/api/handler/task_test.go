package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// captureJobs records deferred jobs without running them.
func captureJobs(t *testing.T) *[]time.Duration {
	t.Helper()
	var delays []time.Duration
	original := service.RunAfter
	service.RunAfter = func(delay time.Duration, _ func()) {
		delays = append(delays, delay)
	}
	t.Cleanup(func() { service.RunAfter = original })
	return &delays
}

func TestCreateTaskSchedulesFutureReminder(t *testing.T) {
	setupHandlerTest(t)
	delays := captureJobs(t)
	alice := createTestUser(t, "alice")

	now := model.NowMillis()
	req := newJSONRequest(t, http.MethodPost, "/api/tasks", map[string]any{
		"title":         "revise algebra",
		"type":          "study",
		"start_time":    now + 3_600_000,
		"end_time":      now + 7_200_000,
		"reminder_time": now + 3_000_000,
	})
	c, recorder := newTestContext(t, alice.ID, req)
	CreateTask(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	assert.Len(t, *delays, 1)
	// Roughly fifty minutes out; scheduling happens a beat after "now".
	assert.InDelta(t, float64(50*time.Minute), float64((*delays)[0]), float64(5*time.Second))
}

func TestCreateTaskSkipsPastReminder(t *testing.T) {
	setupHandlerTest(t)
	delays := captureJobs(t)
	alice := createTestUser(t, "alice")

	now := model.NowMillis()
	req := newJSONRequest(t, http.MethodPost, "/api/tasks", map[string]any{
		"title":         "overdue reading",
		"type":          "study",
		"start_time":    now - 7_200_000,
		"end_time":      now - 3_600_000,
		"reminder_time": now - 3_000_000,
	})
	c, recorder := newTestContext(t, alice.ID, req)
	CreateTask(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Past reminders are dropped silently, the task itself still lands.
	assert.Empty(t, *delays)
	tasks, err := model.ListTasks(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestCreateTaskValidatesPayload(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")

	req := newJSONRequest(t, http.MethodPost, "/api/tasks", map[string]any{
		"type":       "study",
		"start_time": 1,
		"end_time":   2,
	})
	c, recorder := newTestContext(t, alice.ID, req)
	CreateTask(c)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateTaskTogglesCompleted(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")

	task := &model.Task{
		UserID:    alice.ID,
		Title:     "essay draft",
		Type:      "assignment",
		StartTime: 1,
		EndTime:   2,
	}
	assert.NoError(t, task.Insert())

	req := newJSONRequest(t, http.MethodPut, "/api/tasks/"+strconv.FormatInt(task.ID, 10),
		map[string]any{"completed": true})
	c, recorder := newTestContext(t, alice.ID, req)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatInt(task.ID, 10)}}
	UpdateTask(c)
	assert.Equal(t, http.StatusOK, recorder.Code)

	resp := decodeAPIResponse(t, recorder)
	var updated model.Task
	assert.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.True(t, updated.Completed)
}

func TestUpdateTaskDeniedForNonOwner(t *testing.T) {
	setupHandlerTest(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	task := &model.Task{
		UserID:    alice.ID,
		Title:     "essay draft",
		Type:      "assignment",
		StartTime: 1,
		EndTime:   2,
	}
	assert.NoError(t, task.Insert())

	req := newJSONRequest(t, http.MethodPut, "/api/tasks/"+strconv.FormatInt(task.ID, 10),
		map[string]any{"completed": true})
	c, recorder := newTestContext(t, bob.ID, req)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatInt(task.ID, 10)}}
	UpdateTask(c)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
