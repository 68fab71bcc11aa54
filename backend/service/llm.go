package service

import (
	"context"

	"study-hub/backend/common"
	apperrors "study-hub/backend/common/errors"
	"study-hub/backend/model"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionClient is the external completion-service collaborator. Any
// failure (network, quota, malformed response) surfaces as a ServiceError;
// callers in the chat pipeline absorb it, never the end user.
type CompletionClient interface {
	Complete(ctx context.Context, systemPreamble string, transcript []model.ChatMessage) (string, error)
}

// Completions is the process-wide client; tests swap in a fake.
var Completions CompletionClient

func InitCompletions() {
	if common.OpenAIAPIKey == "" {
		common.SysLog("OPENAI_API_KEY not set, AI assistant replies will be degraded")
		return
	}
	cfg := openai.DefaultConfig(common.OpenAIAPIKey)
	if common.OpenAIBaseURL != "" {
		cfg.BaseURL = common.OpenAIBaseURL
	}
	Completions = &openAIClient{client: openai.NewClientWithConfig(cfg)}
	common.SysLog("completion service enabled, model: " + common.OpenAIModel)
}

type openAIClient struct {
	client *openai.Client
}

func (c *openAIClient) Complete(ctx context.Context, systemPreamble string, transcript []model.ChatMessage) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(transcript)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPreamble,
	})
	for _, m := range transcript {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    common.OpenAIModel,
		Messages: messages,
	})
	if err != nil {
		return "", apperrors.ServiceError("completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.ServiceError("completion returned no choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
