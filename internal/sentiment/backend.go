package sentiment

import (
	"fmt"
	"os"

	"github.com/auralabs/aura/internal/insight"
)

const defaultModelDir = "./models"

// NewBackend builds the classifier named by AURA_BACKEND or the -backend
// flag. The returned func releases backend resources; it is never nil.
func NewBackend(name string) (insight.Classifier, func(), error) {
	noop := func() {}

	switch name {
	case "", "vader":
		return NewVADERClassifier(), noop, nil
	case "roberta":
		modelDir := os.Getenv("AURA_MODEL_DIR")
		if modelDir == "" {
			modelDir = defaultModelDir
		}
		classifier, err := NewRobertaClassifier(modelDir)
		if err != nil {
			return nil, noop, err
		}
		return classifier, classifier.Close, nil
	case "remote":
		classifier, err := NewRemoteClassifier(os.Getenv("SENTIMENT_ANALYZER_URL"))
		if err != nil {
			return nil, noop, err
		}
		return classifier, noop, nil
	case "openai":
		classifier, err := NewOpenAIClassifier(os.Getenv("OPENAI_API_KEY"))
		if err != nil {
			return nil, noop, err
		}
		return classifier, noop, nil
	default:
		return nil, noop, &insight.ModelInitError{
			Err: fmt.Errorf("unknown classifier backend %q", name),
		}
	}
}
