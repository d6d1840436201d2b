package solver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"physics-tutor/internal/knowledge"
)

// Solution is the structured answer produced for a physics problem.
type Solution struct {
	Topic        string `json:"topic"`
	Asked        string `json:"asked"`
	Given        string `json:"given"`
	Steps        string `json:"steps"`
	Result       string `json:"result"`
	TopicSummary string `json:"topicSummary"`
}

// Client produces a structured solution for a question. Verified examples are
// a read-only snapshot used to ground the answer.
type Client interface {
	Solve(ctx context.Context, question string, examples []knowledge.VerifiedExample) (Solution, error)
}

const systemPrompt = `You are a physics tutor. Solve the student's problem step by step.
Respond with a single JSON object and nothing else, using exactly these keys:
"topic", "asked", "given", "steps", "result", "topicSummary".`

// buildPrompt folds the curated examples into the instruction so providers
// answer in the same shape the admins verified.
func buildPrompt(examples []knowledge.VerifiedExample) string {
	if len(examples) == 0 {
		return systemPrompt
	}
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\nVerified examples of correct solutions:\n")
	for _, ex := range examples {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", ex.Question, ex.CorrectSolution)
	}
	return b.String()
}

// parseSolution decodes a model reply, tolerating markdown code fences around
// the JSON body.
func parseSolution(content string) (Solution, error) {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	var sol Solution
	if err := json.Unmarshal([]byte(text), &sol); err != nil {
		return Solution{}, fmt.Errorf("malformed solution payload: %w", err)
	}
	if sol.Result == "" && sol.Steps == "" {
		return Solution{}, fmt.Errorf("empty solution payload")
	}
	return sol, nil
}
