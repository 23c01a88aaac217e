package llm

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// Sender submits one prompt under a persona prompt and returns the reply
// text. Transport failures surface as errors; a response that arrives
// without usable text yields an empty string, which the caller substitutes
// with its fixed warning.
type Sender struct {
	client Client
	model  string
}

// NewSender wraps a client for a fixed model.
func NewSender(client Client, model string) *Sender {
	return &Sender{client: client, model: model}
}

// Send performs one round trip to the backend.
func (s *Sender) Send(ctx context.Context, prompt, systemPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
