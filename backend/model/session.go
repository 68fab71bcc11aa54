package model

import (
	"encoding/json"

	"github.com/burugo/thing"
)

// StudySession is a scheduled group meeting. The scheduler is always the
// first attendee.
type StudySession struct {
	thing.BaseModel
	GroupID       int64  `db:"group_id,index" json:"group_id"`
	ScheduledBy   int64  `db:"scheduled_by" json:"scheduled_by"`
	Title         string `db:"title" json:"title"`
	Description   string `db:"description" json:"description"`
	StartTime     int64  `db:"start_time" json:"start_time"`
	EndTime       int64  `db:"end_time" json:"end_time"`
	AttendeesJSON string `db:"attendees_json" json:"-"`
}

func (s *StudySession) TableName() string {
	return "study_sessions"
}

var StudySessionDB *thing.Thing[*StudySession]

func StudySessionInit() error {
	var err error
	StudySessionDB, err = thing.Use[*StudySession]()
	return err
}

func (s *StudySession) Attendees() []int64 {
	var attendees []int64
	if s.AttendeesJSON != "" {
		_ = json.Unmarshal([]byte(s.AttendeesJSON), &attendees)
	}
	return attendees
}

func (s *StudySession) SetAttendees(attendees []int64) {
	data, _ := json.Marshal(attendees)
	s.AttendeesJSON = string(data)
}

// ScheduleSession inserts a session with the scheduler auto-attending.
func ScheduleSession(groupID, userID int64, title, description string, startTime, endTime int64) (*StudySession, error) {
	session := &StudySession{
		GroupID:     groupID,
		ScheduledBy: userID,
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
	}
	session.SetAttendees([]int64{userID})
	if err := StudySessionDB.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

func ListGroupSessions(groupID int64) ([]*StudySession, error) {
	return StudySessionDB.Where("group_id = ?", groupID).Order("start_time ASC").All()
}
