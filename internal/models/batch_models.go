package models

// AnalyzedPost pairs a fetched post with the sentiment assigned to it.
type AnalyzedPost struct {
	PostRecord
	Sentiment SentimentResult `json:"sentiment"`
}

// SentimentCounts aggregates the label distribution of a batch.
type SentimentCounts struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

func (c *SentimentCounts) Add(label SentimentLabel) {
	switch label {
	case SentimentPositive:
		c.Positive++
	case SentimentNegative:
		c.Negative++
	default:
		c.Neutral++
	}
}

func (c SentimentCounts) Total() int {
	return c.Positive + c.Neutral + c.Negative
}

// AnalysisBatch is the output of one pipeline run: the fetched posts in
// source order, each with exactly one sentiment, plus the aggregate counts.
// It is never mutated after the pipeline returns it.
type AnalysisBatch struct {
	Community string          `json:"community"`
	Posts     []AnalyzedPost  `json:"posts"`
	Counts    SentimentCounts `json:"counts"`
}

func (b *AnalysisBatch) Len() int {
	return len(b.Posts)
}
