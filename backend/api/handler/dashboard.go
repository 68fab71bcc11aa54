package handler

import (
	"net/http"
	"time"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/gin-gonic/gin"
)

type dashboardTask struct {
	*model.Task
	DueIn int64 `json:"due_in"`
}

type dashboardStats struct {
	StudyTime struct {
		Today    float64 `json:"today"`
		ThisWeek float64 `json:"this_week"`
	} `json:"study_time"`
	Tasks struct {
		Completed int `json:"completed"`
		Remaining int `json:"remaining"`
	} `json:"tasks"`
	UpcomingTasks []dashboardTask `json:"upcoming_tasks"`
}

const dayMillis = 24 * 60 * 60 * 1000

// GetDashboardStats is pure aggregation over the task table, recomputed on
// every call. Windows are local time: today = midnight to now, this week =
// midnight of the most recent Sunday to now.
func GetDashboardStats(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, nil)
		return
	}

	nowMillis := model.NowMillis()
	now := time.UnixMilli(nowMillis)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	completed, err := model.CompletedTasksEndingSince(userID, startOfWeek.UnixMilli())
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to aggregate tasks", err)
		return
	}
	remaining, err := model.PendingTasksEndingSince(userID, nowMillis)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to aggregate tasks", err)
		return
	}
	upcoming, err := model.TasksEndingBetween(userID, nowMillis, nowMillis+3*dayMillis)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to aggregate tasks", err)
		return
	}

	var stats dashboardStats
	dayStart := startOfDay.UnixMilli()
	for _, task := range completed {
		minutes := float64(task.EndTime-task.StartTime) / float64(60*1000)
		stats.StudyTime.ThisWeek += minutes
		if task.EndTime >= dayStart {
			stats.StudyTime.Today += minutes
			stats.Tasks.Completed++
		}
	}
	stats.Tasks.Remaining = len(remaining)

	stats.UpcomingTasks = make([]dashboardTask, 0, len(upcoming))
	for _, task := range upcoming {
		dueIn := (task.EndTime - nowMillis + dayMillis - 1) / dayMillis
		stats.UpcomingTasks = append(stats.UpcomingTasks, dashboardTask{Task: task, DueIn: dueIn})
	}

	common.RespSuccess(c, stats)
}
