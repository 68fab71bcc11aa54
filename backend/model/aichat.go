package model

import (
	"encoding/json"

	apperrors "study-hub/backend/common/errors"

	"github.com/burugo/thing"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one transcript line.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// AIChat is one assistant conversation. The "current" chat is never a
// stored pointer: it is always the caller's chat with the greatest
// last_active, so pruning records can not leave a dangling reference.
type AIChat struct {
	thing.BaseModel
	UserID       int64  `db:"user_id,index:idx_chat_owner_active" json:"user_id"`
	MessagesJSON string `db:"messages_json" json:"-"`
	LastActive   int64  `db:"last_active,index:idx_chat_owner_active" json:"last_active"`
}

func (c *AIChat) TableName() string {
	return "ai_chats"
}

var AIChatDB *thing.Thing[*AIChat]

func AIChatInit() error {
	var err error
	AIChatDB, err = thing.Use[*AIChat]()
	return err
}

func (c *AIChat) Messages() []ChatMessage {
	messages := []ChatMessage{}
	if c.MessagesJSON != "" {
		_ = json.Unmarshal([]byte(c.MessagesJSON), &messages)
	}
	return messages
}

func (c *AIChat) SetMessages(messages []ChatMessage) {
	data, _ := json.Marshal(messages)
	c.MessagesJSON = string(data)
}

// NewChat creates a fresh empty conversation, making it current.
func NewChat(userID int64) (*AIChat, error) {
	chat := &AIChat{
		UserID:     userID,
		LastActive: NowMillis(),
	}
	chat.SetMessages([]ChatMessage{})
	if err := AIChatDB.Save(chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// GetCurrentChat returns the most recently active chat, or nil when the
// user has none.
func GetCurrentChat(userID int64) (*AIChat, error) {
	chats, err := AIChatDB.Where("user_id = ?", userID).Order("last_active DESC").Fetch(0, 1)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, nil
	}
	return chats[0], nil
}

// ListChats returns the user's chat history, newest first.
func ListChats(userID int64) ([]*AIChat, error) {
	return AIChatDB.Where("user_id = ?", userID).Order("last_active DESC").All()
}

func GetChatByID(chatID int64) (*AIChat, error) {
	chat, err := AIChatDB.ByID(chatID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNotFound, "chat not found", err)
	}
	return chat, nil
}

// AppendChatMessage adds one line and bumps last_active.
func AppendChatMessage(chat *AIChat, message ChatMessage) error {
	chat.SetMessages(append(chat.Messages(), message))
	chat.LastActive = NowMillis()
	return AIChatDB.Save(chat)
}
