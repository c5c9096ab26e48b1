package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/models"
)

// DefaultModelName is the pretrained checkpoint the local backend resolves
// at initialization.
const DefaultModelName = "cardiffnlp/twitter-roberta-base-sentiment-latest"

// RobertaClassifier runs the RoBERTa sentiment checkpoint locally through an
// ONNX session. Initialization downloads the model on first use and is
// expensive; construct the classifier once per process and reuse it. The
// pipeline is read-only after construction and safe for concurrent Classify
// calls.
type RobertaClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

func NewRobertaClassifier(modelDir string) (*RobertaClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, &insight.ModelInitError{Err: fmt.Errorf("failed to create model directory: %w", err)}
	}

	slog.Info("[RobertaClassifier] Resolving model",
		slog.String("model", DefaultModelName),
		slog.String("dir", modelDir))

	modelPath, err := hugot.DownloadModel(DefaultModelName, modelDir, hugot.NewDownloadOptions())
	if err != nil {
		return nil, &insight.ModelInitError{Err: fmt.Errorf("failed to download model: %w", err)}
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, &insight.ModelInitError{Err: fmt.Errorf("failed to initialize ONNX session: %w", err)}
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, &insight.ModelInitError{Err: fmt.Errorf("failed to initialize pipeline: %w", err)}
	}

	slog.Info("[RobertaClassifier] Pipeline ready", slog.String("path", modelPath))

	return &RobertaClassifier{session: session, pipeline: pipeline}, nil
}

func (c *RobertaClassifier) Classify(ctx context.Context, texts []string) ([]models.SentimentResult, error) {
	if len(texts) == 0 {
		return []models.SentimentResult{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, &insight.ClassificationError{Err: err}
	}

	prepared := make([]string, len(texts))
	for i, text := range texts {
		prepared[i] = PrepareText(text)
	}

	output, err := c.pipeline.RunPipeline(prepared)
	if err != nil {
		return nil, &insight.ClassificationError{Err: err}
	}

	if len(output.ClassificationOutputs) != len(texts) {
		return nil, &insight.ClassificationError{
			Err: fmt.Errorf("pipeline returned %d outputs for %d texts", len(output.ClassificationOutputs), len(texts)),
		}
	}

	results := make([]models.SentimentResult, len(texts))
	for i, candidates := range output.ClassificationOutputs {
		if len(candidates) == 0 {
			return nil, &insight.ClassificationError{
				Err: fmt.Errorf("pipeline returned no candidates for text %d", i),
			}
		}
		best := candidates[0]
		for _, candidate := range candidates[1:] {
			if candidate.Score > best.Score {
				best = candidate
			}
		}
		results[i] = models.SentimentResult{
			Label: NormalizeLabel(best.Label),
			Score: clampScore(float64(best.Score)),
		}
	}
	return results, nil
}

// Close releases the ONNX session. The classifier is unusable afterwards.
func (c *RobertaClassifier) Close() {
	c.session.Destroy()
}
