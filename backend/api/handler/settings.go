package handler

import (
	"net/http"

	"study-hub/backend/common"
	"study-hub/backend/model"

	"github.com/gin-gonic/gin"
)

// settingsView is the wire shape: JSON columns exposed as structured
// fields.
type settingsView struct {
	*model.UserSettings
	StudyPreferences model.StudyPreferences `json:"study_preferences"`
	AIMemory         []model.MemoryEntry    `json:"ai_memory"`
}

func viewSettings(s *model.UserSettings) settingsView {
	return settingsView{
		UserSettings:     s,
		StudyPreferences: s.Preferences(),
		AIMemory:         s.AIMemory(),
	}
}

// GetSettings lazily creates the row (with a unique serial code) on first
// read; repeat calls return the same record.
func GetSettings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, nil)
		return
	}
	settings, err := model.GetOrCreateSettings(userID)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, viewSettings(settings))
}

type updateSettingsPayload struct {
	Theme            *string                 `json:"theme" validate:"omitempty,oneof=light dark system"`
	StudyMode        *string                 `json:"study_mode" validate:"omitempty,oneof=normal pomodoro"`
	FocusMode        *bool                   `json:"focus_mode"`
	Notifications    *bool                   `json:"notifications"`
	StudyPreferences *model.StudyPreferences `json:"study_preferences"`
}

// UpdateSettings merges only the provided fields; NotFound when the row
// does not exist yet.
func UpdateSettings(c *gin.Context) {
	var payload updateSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	settings, err := model.GetSettingsByUserID(c.GetInt64("user_id"))
	if err != nil {
		common.RespAppError(c, err)
		return
	}

	if payload.Theme != nil {
		settings.Theme = *payload.Theme
	}
	if payload.StudyMode != nil {
		settings.StudyMode = *payload.StudyMode
	}
	if payload.FocusMode != nil {
		settings.FocusMode = *payload.FocusMode
	}
	if payload.Notifications != nil {
		settings.Notifications = *payload.Notifications
	}
	if payload.StudyPreferences != nil {
		settings.SetPreferences(*payload.StudyPreferences)
	}

	if err := settings.Update(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to update settings", err)
		return
	}
	common.RespSuccess(c, viewSettings(settings))
}

type addStudyTimePayload struct {
	Duration int64 `json:"duration" validate:"gte=0"`
}

func AddStudyTime(c *gin.Context) {
	var payload addStudyTimePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	settings, err := model.AddStudyTime(c.GetInt64("user_id"), payload.Duration)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, viewSettings(settings))
}

func ClearAIMemory(c *gin.Context) {
	if err := model.ClearAIMemory(c.GetInt64("user_id")); err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccessStr(c, "AI memory cleared")
}
