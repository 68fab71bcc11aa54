package model

import (
	"encoding/json"

	"study-hub/backend/common"
	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"

	StudyModeNormal   = "normal"
	StudyModePomodoro = "pomodoro"
)

// serialRetryLimit bounds the code-collision retry loop. With 36^8 codes a
// second collision in a row means the RNG is broken, not bad luck.
const serialRetryLimit = 5

// StudyPreferences are durations in milliseconds.
type StudyPreferences struct {
	PreferredStudyTime int64 `json:"preferred_study_time"`
	FocusDuration      int64 `json:"focus_duration"`
	BreakDuration      int64 `json:"break_duration"`
}

// MemoryEntry is one line of the AI memory transcript.
type MemoryEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// UserSettings holds per-user preferences, exactly one row per user.
// SerialCode is the public lookup key used for friend-adding.
type UserSettings struct {
	thing.BaseModel
	UserID          int64  `db:"user_id,uniqueIndex" json:"user_id"`
	SerialCode      string `db:"serial_code,uniqueIndex" json:"serial_code"`
	Theme           string `db:"theme" json:"theme"`
	StudyMode       string `db:"study_mode" json:"study_mode"`
	FocusMode       bool   `db:"focus_mode" json:"focus_mode"`
	Notifications   bool   `db:"notifications" json:"notifications"`
	PreferencesJSON string `db:"preferences_json" json:"-"`
	AIMemoryJSON    string `db:"ai_memory_json" json:"-"`
	TotalStudyTime  int64  `db:"total_study_time" json:"total_study_time"`
}

func (s *UserSettings) TableName() string {
	return "user_settings"
}

var UserSettingsDB *thing.Thing[*UserSettings]

func UserSettingsInit() error {
	var err error
	UserSettingsDB, err = thing.Use[*UserSettings]()
	return err
}

func (s *UserSettings) Preferences() StudyPreferences {
	var prefs StudyPreferences
	if s.PreferencesJSON != "" {
		_ = json.Unmarshal([]byte(s.PreferencesJSON), &prefs)
	}
	return prefs
}

func (s *UserSettings) SetPreferences(prefs StudyPreferences) {
	data, _ := json.Marshal(prefs)
	s.PreferencesJSON = string(data)
}

func (s *UserSettings) AIMemory() []MemoryEntry {
	entries := []MemoryEntry{}
	if s.AIMemoryJSON != "" {
		_ = json.Unmarshal([]byte(s.AIMemoryJSON), &entries)
	}
	return entries
}

func (s *UserSettings) SetAIMemory(entries []MemoryEntry) {
	data, _ := json.Marshal(entries)
	s.AIMemoryJSON = string(data)
}

func defaultSettings(userID int64) *UserSettings {
	s := &UserSettings{
		UserID:        userID,
		Theme:         ThemeSystem,
		StudyMode:     StudyModeNormal,
		FocusMode:     false,
		Notifications: true,
	}
	s.SetPreferences(StudyPreferences{
		PreferredStudyTime: 25 * 60 * 1000,
		FocusDuration:      25 * 60 * 1000,
		BreakDuration:      5 * 60 * 1000,
	})
	s.SetAIMemory([]MemoryEntry{})
	return s
}

func GetSettingsByUserID(userID int64) (*UserSettings, error) {
	rows, err := UserSettingsDB.Where("user_id = ?", userID).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("settings not found")
	}
	return rows[0], nil
}

func GetSettingsBySerialCode(code string) (*UserSettings, error) {
	rows, err := UserSettingsDB.Where("serial_code = ?", code).Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NotFound("no user with that serial code")
	}
	return rows[0], nil
}

// GetOrCreateSettings lazily creates the row on first read. The serial code
// is regenerated on collision; the read-check-write sequence is still racy
// between concurrent callers, which the unique index on user_id resolves.
func GetOrCreateSettings(userID int64) (*UserSettings, error) {
	settings, err := GetSettingsByUserID(userID)
	if err == nil {
		return settings, nil
	}
	if !apperrors.Is(err, apperrors.CodeNotFound) {
		return nil, err
	}

	settings = defaultSettings(userID)
	for attempt := 0; attempt < serialRetryLimit; attempt++ {
		settings.SerialCode = common.GenerateSerialCode()
		taken, err := UserSettingsDB.Where("serial_code = ?", settings.SerialCode).Count()
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			continue
		}
		if err := UserSettingsDB.Save(settings); err != nil {
			return nil, err
		}
		return settings, nil
	}
	return nil, apperrors.Conflict("could not allocate a unique serial code")
}

func (s *UserSettings) Update() error {
	return UserSettingsDB.Save(s)
}

// AddStudyTime increments the cumulative counter; negative durations are
// rejected so the total is monotonically non-decreasing.
func AddStudyTime(userID, duration int64) (*UserSettings, error) {
	if duration < 0 {
		return nil, apperrors.InvalidOperation("duration must not be negative")
	}
	settings, err := GetSettingsByUserID(userID)
	if err != nil {
		return nil, err
	}
	settings.TotalStudyTime += duration
	if err := UserSettingsDB.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func ClearAIMemory(userID int64) error {
	settings, err := GetSettingsByUserID(userID)
	if err != nil {
		return err
	}
	settings.SetAIMemory([]MemoryEntry{})
	return UserSettingsDB.Save(settings)
}
