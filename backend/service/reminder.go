package service

import (
	"fmt"

	"study-hub/backend/common"
	"study-hub/backend/model"
)

// Notifier delivers task reminders. Delivery mechanics are out of scope;
// the default writes to the system log.
type Notifier interface {
	TaskReminder(task *model.Task)
}

var Notifications Notifier = &logNotifier{}

type logNotifier struct{}

func (n *logNotifier) TaskReminder(task *model.Task) {
	common.SysLog(fmt.Sprintf("reminder: task %q is due soon", task.Title))
}

// FireTaskReminder is the deferred reminder consumer. A task deleted after
// scheduling is tolerated by doing nothing.
func FireTaskReminder(taskID int64) {
	task, err := model.GetTaskByID(taskID)
	if err != nil {
		return
	}
	Notifications.TaskReminder(task)
}
