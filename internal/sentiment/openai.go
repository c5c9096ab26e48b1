package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

const openAISystemPrompt = `You are a sentiment classifier. The user sends a JSON array of texts.
Respond with ONLY a JSON array of the same length and order, each element an object:
{"label": "positive" | "neutral" | "negative", "score": <confidence between 0 and 1>}.
No markdown, no commentary.`

// OpenAIClassifier labels a whole batch with a single chat completion that
// returns a JSON array aligned with the input order.
type OpenAIClassifier struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClassifier(apiKey string) (*OpenAIClassifier, error) {
	if apiKey == "" {
		return nil, &insight.ModelInitError{
			Err: errors.New("OPENAI_API_KEY is not set"),
		}
	}
	return &OpenAIClassifier{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModelGPT4oMini,
	}, nil
}

type openAIVerdict struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *OpenAIClassifier) Classify(ctx context.Context, texts []string) ([]models.SentimentResult, error) {
	if len(texts) == 0 {
		return []models.SentimentResult{}, nil
	}

	prepared := make([]string, len(texts))
	for i, text := range texts {
		prepared[i] = PrepareText(text)
	}
	payload, err := json.Marshal(prepared)
	if err != nil {
		return nil, &insight.ClassificationError{Err: fmt.Errorf("failed to marshal texts: %w", err)}
	}

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.F(c.model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemPrompt),
			openai.UserMessage(string(payload)),
		}),
		Temperature: openai.F(0.0),
	})
	if err != nil {
		return nil, &insight.ClassificationError{Err: err}
	}
	if len(completion.Choices) == 0 {
		return nil, &insight.ClassificationError{Err: errors.New("completion returned no choices")}
	}

	var verdicts []openAIVerdict
	content := stripCodeFence(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &verdicts); err != nil {
		return nil, &insight.ClassificationError{Err: fmt.Errorf("failed to decode verdicts: %w", err)}
	}
	if len(verdicts) != len(texts) {
		return nil, &insight.ClassificationError{
			Err: fmt.Errorf("got %d verdicts for %d texts", len(verdicts), len(texts)),
		}
	}

	results := make([]models.SentimentResult, len(texts))
	for i, verdict := range verdicts {
		results[i] = models.SentimentResult{
			Label: NormalizeLabel(verdict.Label),
			Score: clampScore(verdict.Score),
		}
	}
	return results, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
