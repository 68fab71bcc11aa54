package model

import (
	"study-hub/backend/common"

	"github.com/burugo/thing"
)

const (
	MessageTypeText  = "text"
	MessageTypeFile  = "file"
	MessageTypeLink  = "link"
	MessageTypeImage = "image"
)

// GroupMessage is an immutable chat line: never edited, never deleted.
// FileID is set only for file and image messages.
type GroupMessage struct {
	thing.BaseModel
	GroupID   int64  `db:"group_id,index:idx_message_group_time" json:"group_id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	Type      string `db:"type" json:"type"`
	Content   string `db:"content" json:"content"`
	FileID    int64  `db:"file_id" json:"file_id,omitempty"`
	Timestamp int64  `db:"timestamp,index:idx_message_group_time" json:"timestamp"`
}

func (m *GroupMessage) TableName() string {
	return "group_messages"
}

var GroupMessageDB *thing.Thing[*GroupMessage]

func GroupMessageInit() error {
	var err error
	GroupMessageDB, err = thing.Use[*GroupMessage]()
	return err
}

func (m *GroupMessage) Insert() error {
	return GroupMessageDB.Save(m)
}

// GetGroupMessages returns the newest messages first, capped at the
// configured page size.
func GetGroupMessages(groupID int64) ([]*GroupMessage, error) {
	return GroupMessageDB.Where("group_id = ?", groupID).
		Order("timestamp DESC").Fetch(0, common.MessagePageCap)
}
