package sentiment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/auralabs/aura/internal/clients"
	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

// RemoteClassifier delegates to a hosted batch sentiment service. Responses
// are matched back by content id, so output order never depends on the order
// the service happens to return.
type RemoteClassifier struct {
	client *clients.HuggingFaceClient
}

func NewRemoteClassifier(endpoint string) (*RemoteClassifier, error) {
	if endpoint == "" {
		return nil, &insight.ModelInitError{
			Err: errors.New("sentiment analyzer endpoint is not configured"),
		}
	}
	return &RemoteClassifier{client: clients.NewHuggingFaceClient(endpoint)}, nil
}

func (c *RemoteClassifier) Classify(ctx context.Context, texts []string) ([]models.SentimentResult, error) {
	if len(texts) == 0 {
		return []models.SentimentResult{}, nil
	}

	request := make(models.SentimentAnalysisBatchRequest, len(texts))
	for i, text := range texts {
		request[i] = models.SentimentAnalysisRequest{
			ContentID: strconv.Itoa(i),
			Text:      PrepareText(text),
		}
	}

	response, err := c.client.GetBatchedSentimentAnalysis(ctx, request)
	if err != nil {
		return nil, &insight.ClassificationError{Err: err}
	}

	byID := make(map[string]models.SentimentAnalysisResponse, len(response))
	for _, entry := range response {
		byID[entry.ContentID] = entry
	}

	results := make([]models.SentimentResult, len(texts))
	for i := range texts {
		entry, ok := byID[strconv.Itoa(i)]
		if !ok {
			return nil, &insight.ClassificationError{
				Err: fmt.Errorf("service returned no result for text %d", i),
			}
		}
		results[i] = models.SentimentResult{
			Label: NormalizeLabel(entry.SentimentLabel),
			Score: clampScore(entry.Confidence),
		}
	}
	return results, nil
}
