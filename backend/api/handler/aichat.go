package handler

import (
	"net/http"
	"strconv"

	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-gonic/gin"
)

// chatView exposes the transcript from its JSON column.
type chatView struct {
	*model.AIChat
	Messages []model.ChatMessage `json:"messages"`
}

func viewChat(chat *model.AIChat) chatView {
	return chatView{AIChat: chat, Messages: chat.Messages()}
}

// GetCurrentChat returns the most recently active chat, or an empty
// transcript when the user has none yet.
func GetCurrentChat(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, nil)
		return
	}
	chat, err := model.GetCurrentChat(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load chat", err)
		return
	}
	if chat == nil {
		common.RespSuccess(c, gin.H{"messages": []model.ChatMessage{}})
		return
	}
	common.RespSuccess(c, viewChat(chat))
}

func GetChatHistory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, []chatView{})
		return
	}
	chats, err := model.ListChats(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load chat history", err)
		return
	}
	views := make([]chatView, 0, len(chats))
	for _, chat := range chats {
		views = append(views, viewChat(chat))
	}
	common.RespSuccess(c, views)
}

// StartNewChat always creates a fresh conversation, even when the current
// one is empty.
func StartNewChat(c *gin.Context) {
	chat, err := model.NewChat(c.GetInt64("user_id"))
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to start chat", err)
		return
	}
	common.RespSuccess(c, viewChat(chat))
}

type sendChatMessagePayload struct {
	Content string `json:"content" validate:"required"`
	Tone    string `json:"tone" validate:"required,max=50"`
}

// SendChatMessage persists the user's message and returns immediately; the
// assistant's reply lands through an independent deferred write so variable
// completion latency never blocks submission.
func SendChatMessage(c *gin.Context) {
	var payload sendChatMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	userID := c.GetInt64("user_id")
	chat, err := model.GetCurrentChat(userID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to load chat", err)
		return
	}
	if chat == nil {
		chat, err = model.NewChat(userID)
		if err != nil {
			common.RespError(c, http.StatusInternalServerError, "failed to create chat", err)
			return
		}
	}

	err = model.AppendChatMessage(chat, model.ChatMessage{
		Role:      model.ChatRoleUser,
		Content:   payload.Content,
		Timestamp: model.NowMillis(),
	})
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to save message", err)
		return
	}

	chatID := chat.ID
	tone := payload.Tone
	service.RunAfter(0, func() {
		service.GenerateChatResponse(chatID, tone)
	})

	common.RespSuccess(c, gin.H{"chat_id": chatID})
}

type processFilePayload struct {
	FileID int64  `json:"file_id" validate:"required"`
	Action string `json:"action" validate:"required,max=50"`
}

// ProcessFile dispatches background processing of an owned, uploaded file;
// the outcome arrives as a message in the current chat.
func ProcessFile(c *gin.Context) {
	var payload processFilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	file, err := model.GetFileForUser(payload.FileID, c.GetInt64("user_id"))
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	if file.IsFolder || file.StorageKey == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "file has no stored content")
		return
	}

	fileID := file.ID
	action := payload.Action
	service.RunAfter(0, func() {
		service.ProcessFileContent(fileID, action)
	})
	common.RespSuccessStr(c, "processing "+strconv.FormatInt(fileID, 10))
}
