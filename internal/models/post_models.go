package models

// PostRecord is the normalized form of a single subreddit post, one row of
// the table the dashboard renders.
type PostRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Score     int    `json:"score"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"created_at"`
}

type RedditAPIResponse struct {
	Kind string        `json:"kind"`
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Data RedditAPIChildData `json:"data"`
}

type RedditAPIChildData struct {
	ID         string  `json:"id"`
	Subreddit  string  `json:"subreddit"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Ups        int     `json:"ups"`
	URL        string  `json:"url"`
	CreatedUTC float64 `json:"created_utc"`
}

// ToPostRecord flattens the listing child into the shape the pipeline works with.
func (d RedditAPIChildData) ToPostRecord() PostRecord {
	return PostRecord{
		ID:        d.ID,
		Title:     d.Title,
		Body:      d.Selftext,
		Score:     d.Ups,
		URL:       d.URL,
		CreatedAt: int64(d.CreatedUTC),
	}
}
