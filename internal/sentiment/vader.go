package sentiment

import (
	"context"

	"github.com/jonreiter/govader"

	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

// Compound-score cutoffs for mapping VADER output onto the label set.
const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

// VADERClassifier runs the lexicon-based VADER analyzer locally. It needs no
// model artifact, is fully deterministic, and is safe for concurrent use.
type VADERClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERClassifier() *VADERClassifier {
	return &VADERClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (c *VADERClassifier) Classify(ctx context.Context, texts []string) ([]models.SentimentResult, error) {
	results := make([]models.SentimentResult, 0, len(texts))
	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, &insight.ClassificationError{Err: err}
		}

		scores := c.analyzer.PolarityScores(PrepareText(text))

		var label models.SentimentLabel
		var confidence float64
		switch {
		case scores.Compound >= positiveThreshold:
			label = models.SentimentPositive
			confidence = scores.Positive
		case scores.Compound <= negativeThreshold:
			label = models.SentimentNegative
			confidence = scores.Negative
		default:
			label = models.SentimentNeutral
			confidence = scores.Neutral
		}

		results = append(results, models.SentimentResult{
			Label: label,
			Score: clampScore(confidence),
		})
	}
	return results, nil
}
