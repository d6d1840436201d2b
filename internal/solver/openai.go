package solver

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"physics-tutor/internal/knowledge"
)

type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, baseURL, model string) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *OpenAIClient) Solve(ctx context.Context, question string, examples []knowledge.VerifiedExample) (Solution, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildPrompt(examples)},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Solution{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Solution{}, fmt.Errorf("empty completion response")
	}
	return parseSolution(resp.Choices[0].Message.Content)
}
