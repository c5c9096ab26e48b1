package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/auralabs/aura/config"
	"github.com/auralabs/aura/internal/clients"
	"github.com/auralabs/aura/internal/insight"
	"github.com/auralabs/aura/internal/logging"
	"github.com/auralabs/aura/internal/sentiment"
)

const titleColumnWidth = 70

func main() {
	subreddit := flag.String("subreddit", "apple", "community to analyze")
	limit := flag.Int("limit", 25, "number of hot posts to fetch (1-100)")
	backend := flag.String("backend", os.Getenv("AURA_BACKEND"), "classifier backend: vader, roberta, remote, openai")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	forum, err := clients.NewRedditClient(config.RedditCredentialsFromEnv())
	if err != nil {
		fail(err)
	}

	classifier, closeClassifier, err := sentiment.NewBackend(*backend)
	if err != nil {
		fail(err)
	}
	defer closeClassifier()

	pipeline := insight.NewPipeline(forum, classifier, nil)

	batch, err := pipeline.Run(context.Background(), *subreddit, *limit)
	if err != nil {
		fail(err)
	}

	fmt.Printf("r/%s - %d posts analyzed: %d positive, %d neutral, %d negative\n\n",
		batch.Community, batch.Len(),
		batch.Counts.Positive, batch.Counts.Neutral, batch.Counts.Negative)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tLABEL\tSCORE")
	for _, post := range batch.Posts {
		fmt.Fprintf(w, "%s\t%s\t%.3f\n", clipTitle(post.Title), post.Sentiment.Label, post.Sentiment.Score)
	}
	w.Flush()
}

func clipTitle(title string) string {
	if utf8.RuneCountInString(title) <= titleColumnWidth {
		return title
	}
	return string([]rune(title)[:titleColumnWidth-3]) + "..."
}

func fail(err error) {
	slog.Error("[Aura] Run failed", slog.String("error", err.Error()))
	fmt.Fprintln(os.Stderr, insight.UserMessage(err))
	os.Exit(1)
}
