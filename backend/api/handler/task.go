package handler

import (
	"net/http"
	"strconv"
	"time"

	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-gonic/gin"
)

type createTaskPayload struct {
	Title        string `json:"title" validate:"required,max=255"`
	Type         string `json:"type" validate:"required,max=50"`
	StartTime    int64  `json:"start_time" validate:"required"`
	EndTime      int64  `json:"end_time" validate:"required"`
	ReminderTime int64  `json:"reminder_time"`
	Completed    bool   `json:"completed"`
}

func CreateTask(c *gin.Context) {
	var payload createTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	task := &model.Task{
		UserID:       c.GetInt64("user_id"),
		Title:        payload.Title,
		Type:         payload.Type,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		ReminderTime: payload.ReminderTime,
		Completed:    payload.Completed,
	}
	if err := task.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to create task", err)
		return
	}

	// A reminder in the past is silently skipped, not an error.
	if payload.ReminderTime > 0 {
		now := model.NowMillis()
		if payload.ReminderTime > now {
			taskID := task.ID
			service.RunAfter(time.Duration(payload.ReminderTime-now)*time.Millisecond, func() {
				service.FireTaskReminder(taskID)
			})
		}
	}

	common.RespSuccess(c, task)
}

func ListTasks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, []*model.Task{})
		return
	}
	tasks, err := model.ListTasks(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list tasks", err)
		return
	}
	common.RespSuccess(c, tasks)
}

type updateTaskPayload struct {
	Completed bool `json:"completed"`
}

// UpdateTask flips the completed flag; nothing else is mutable here.
func UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid task id")
		return
	}
	var payload updateTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	task, err := model.SetTaskCompleted(taskID, c.GetInt64("user_id"), payload.Completed)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, task)
}
