package service

import (
	"context"
	"fmt"
	"time"

	"study-hub/backend/common"
	"study-hub/backend/model"
)

const (
	// What the user sees when the service succeeds but returns nothing.
	emptyReplyFallback = "I'm not sure how to respond to that."
	// What the user sees instead of any completion failure.
	apologyReply = "I apologize, but I'm having trouble responding right now. Please try again."

	completionTimeout = 60 * time.Second
)

func tonePreamble(tone string) string {
	return fmt.Sprintf("You are a helpful AI study assistant. Your tone should be %s. "+
		"If the user seems stressed or vents, offer support and mental wellness advice. "+
		"If insulted, apologize and ask for clarification.", tone)
}

// GenerateChatResponse is the deferred half of message submission: load the
// chat (no-op when it was deleted first), call the completion service and
// append the assistant's reply. Completion failures degrade to a fixed
// apology message — this path never reports an error to anyone.
func GenerateChatResponse(chatID int64, tone string) {
	chat, err := model.GetChatByID(chatID)
	if err != nil {
		return
	}

	reply := apologyReply
	if Completions != nil {
		ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
		defer cancel()
		content, err := Completions.Complete(ctx, tonePreamble(tone), chat.Messages())
		switch {
		case err != nil:
			common.SysError("completion failed: " + err.Error())
		case content == "":
			reply = emptyReplyFallback
		default:
			reply = content
		}
	}

	if err := model.AppendChatMessage(chat, model.ChatMessage{
		Role:      model.ChatRoleAssistant,
		Content:   reply,
		Timestamp: model.NowMillis(),
	}); err != nil {
		common.SysError("append assistant message: " + err.Error())
	}
}

// ProcessFileContent posts a summary placeholder for a processed file into
// the owner's current chat. No-ops when file or chat are gone.
func ProcessFileContent(fileID int64, action string) {
	file, err := model.FileDB.ByID(fileID)
	if err != nil {
		return
	}
	chat, err := model.GetCurrentChat(file.UserID)
	if err != nil || chat == nil {
		return
	}
	_ = action // single processing mode for now; the action selects it later
	message := model.ChatMessage{
		Role:      model.ChatRoleAssistant,
		Content:   fmt.Sprintf("I've processed %q. Here's a summary: [File processing coming soon]", file.Name),
		Timestamp: model.NowMillis(),
	}
	if err := model.AppendChatMessage(chat, message); err != nil {
		common.SysError("append processed-file message: " + err.Error())
	}
}
