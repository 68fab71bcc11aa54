package service

import (
	"path/filepath"
	"testing"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/stretchr/testify/assert"
)

func setupServiceTestDB(t *testing.T) {
	t.Helper()
	originalSQLitePath := common.SQLitePath
	common.SQLitePath = filepath.Join(t.TempDir(), "service_test.db")

	err := model.InitDB()
	assert.NoError(t, err)

	t.Cleanup(func() {
		common.SQLitePath = originalSQLitePath
	})
}

type spyNotifier struct {
	reminded []*model.Task
}

func (s *spyNotifier) TaskReminder(task *model.Task) {
	s.reminded = append(s.reminded, task)
}

func useNotifier(t *testing.T, spy *spyNotifier) {
	t.Helper()
	original := Notifications
	Notifications = spy
	t.Cleanup(func() { Notifications = original })
}

func TestFireTaskReminderDelivers(t *testing.T) {
	setupServiceTestDB(t)
	spy := &spyNotifier{}
	useNotifier(t, spy)

	task := &model.Task{
		UserID:    1,
		Title:     "revise algebra",
		Type:      "study",
		StartTime: 1,
		EndTime:   2,
	}
	assert.NoError(t, task.Insert())

	FireTaskReminder(task.ID)
	assert.Len(t, spy.reminded, 1)
	assert.Equal(t, "revise algebra", spy.reminded[0].Title)
}

// A task deleted between scheduling and firing is tolerated silently.
func TestFireTaskReminderMissingTaskIsNoOp(t *testing.T) {
	setupServiceTestDB(t)
	spy := &spyNotifier{}
	useNotifier(t, spy)

	FireTaskReminder(999)
	assert.Empty(t, spy.reminded)
}
