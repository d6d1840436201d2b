package solver

import (
	"context"
	"fmt"

	"github.com/Morwran/yagpt"

	"physics-tutor/internal/knowledge"
)

type YandexClient struct {
	ya       yagpt.YaGPTFace
	iamToken string
}

func NewYandex(oauthToken, folderID string) (*YandexClient, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}
	resp, err := iam.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create iam token: %w", err)
	}

	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	return &YandexClient{
		ya:       ya,
		iamToken: resp.IamToken,
	}, nil
}

func (c *YandexClient) Solve(ctx context.Context, question string, examples []knowledge.VerifiedExample) (Solution, error) {
	messages := []yagpt.Message{
		{Role: "system", Content: buildPrompt(examples)},
		{Role: "user", Content: question},
	}

	resp, err := c.ya.CompletionWithCtx(ctx, c.iamToken, messages)
	if err != nil {
		return Solution{}, fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Solution{}, fmt.Errorf("yagpt returned empty response")
	}
	return parseSolution(resp.Alternatives[0].Message.Content)
}
