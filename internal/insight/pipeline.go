package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/auralabs/aura/internal/models"
)

// ForumClient retrieves a bounded list of trending posts for a community.
type ForumClient interface {
	FetchHotPosts(ctx context.Context, community string, limit int) ([]models.PostRecord, error)
}

// Classifier assigns a sentiment to every text in a batch. The output must
// have the same length and order as the input; a backend that cannot
// guarantee that fails the whole batch instead.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]models.SentimentResult, error)
}

// ResultCache memoizes finished batches keyed on (community, limit). It is a
// performance layer only: implementations log their own failures and never
// surface them.
type ResultCache interface {
	Get(ctx context.Context, community string, limit int) (*models.AnalysisBatch, bool)
	Set(ctx context.Context, community string, limit int, batch *models.AnalysisBatch)
}

// Pipeline orchestrates fetch -> normalize -> classify -> aggregate.
type Pipeline struct {
	forum      ForumClient
	classifier Classifier
	cache      ResultCache
}

// NewPipeline wires the injected collaborators together. cache may be nil.
func NewPipeline(forum ForumClient, classifier Classifier, cache ResultCache) *Pipeline {
	return &Pipeline{
		forum:      forum,
		classifier: classifier,
		cache:      cache,
	}
}

// JointText builds the text that gets classified for a post: title and body
// joined with a fixed separator. The joint text, not either field alone,
// carries the sentiment.
func JointText(p models.PostRecord) string {
	return p.Title + ". " + p.Body
}

// Run produces a fresh AnalysisBatch for the community. Failures from the
// forum client and the classifier propagate unchanged so callers can react
// per kind; no partial batch is ever returned.
func (p *Pipeline) Run(ctx context.Context, community string, limit int) (*models.AnalysisBatch, error) {
	if p.cache != nil {
		if batch, ok := p.cache.Get(ctx, community, limit); ok {
			slog.Info("[Pipeline] Serving cached analysis",
				slog.String("community", community),
				slog.Int("limit", limit))
			return batch, nil
		}
	}

	start := time.Now()

	posts, err := p.forum.FetchHotPosts(ctx, community, limit)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(posts))
	for i, post := range posts {
		texts[i] = JointText(post)
	}

	results, err := p.classifier.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(results) != len(posts) {
		return nil, &ClassificationError{
			Err: fmt.Errorf("classifier returned %d results for %d posts", len(results), len(posts)),
		}
	}

	batch := &models.AnalysisBatch{
		Community: community,
		Posts:     make([]models.AnalyzedPost, len(posts)),
	}
	for i, post := range posts {
		batch.Posts[i] = models.AnalyzedPost{
			PostRecord: post,
			Sentiment:  results[i],
		}
		batch.Counts.Add(results[i].Label)
	}

	slog.Info("[Pipeline] Analysis complete",
		slog.String("community", community),
		slog.Int("posts", batch.Len()),
		slog.Duration("elapsed", time.Since(start)))

	if p.cache != nil {
		p.cache.Set(ctx, community, limit, batch)
	}

	return batch, nil
}
