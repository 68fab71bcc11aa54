package model

import (
	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

// Task is a calendar entry. All instants are epoch milliseconds.
// ReminderTime zero means no reminder.
type Task struct {
	thing.BaseModel
	UserID       int64  `db:"user_id,index:idx_task_owner_end" json:"user_id"`
	Title        string `db:"title" json:"title"`
	Type         string `db:"type" json:"type"`
	StartTime    int64  `db:"start_time" json:"start_time"`
	EndTime      int64  `db:"end_time,index:idx_task_owner_end" json:"end_time"`
	ReminderTime int64  `db:"reminder_time" json:"reminder_time,omitempty"`
	Completed    bool   `db:"completed" json:"completed"`
}

func (t *Task) TableName() string {
	return "tasks"
}

var TaskDB *thing.Thing[*Task]

func TaskInit() error {
	var err error
	TaskDB, err = thing.Use[*Task]()
	return err
}

func (t *Task) Insert() error {
	return TaskDB.Save(t)
}

func ListTasks(userID int64) ([]*Task, error) {
	return TaskDB.Where("user_id = ?", userID).Order("start_time ASC").All()
}

func GetTaskByID(taskID int64) (*Task, error) {
	return TaskDB.ByID(taskID)
}

// SetTaskCompleted flips the completed flag; no other field is mutable
// through this path.
func SetTaskCompleted(taskID, userID int64, completed bool) (*Task, error) {
	task, err := TaskDB.ByID(taskID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeAccessDenied, "task not found or access denied", err)
	}
	if task.UserID != userID {
		return nil, apperrors.AccessDenied("task not found or access denied")
	}
	task.Completed = completed
	if err := TaskDB.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Dashboard source queries. The aggregation itself lives in the handler and
// is recomputed on every call.

// CompletedTasksEndingSince returns completed tasks whose end time is at or
// after the given instant.
func CompletedTasksEndingSince(userID, since int64) ([]*Task, error) {
	return TaskDB.Where("user_id = ? AND completed = ? AND end_time >= ?", userID, true, since).All()
}

// PendingTasksEndingSince returns not-completed tasks ending at or after
// the given instant.
func PendingTasksEndingSince(userID, since int64) ([]*Task, error) {
	return TaskDB.Where("user_id = ? AND completed = ? AND end_time >= ?", userID, false, since).All()
}

// TasksEndingBetween returns the caller's tasks with from <= end_time <= to.
func TasksEndingBetween(userID, from, to int64) ([]*Task, error) {
	return TaskDB.Where("user_id = ? AND end_time >= ? AND end_time <= ?", userID, from, to).
		Order("end_time ASC").All()
}
