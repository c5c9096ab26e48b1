package sentiment

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/auralabs/aura/internal/models"
)

// MaxTextLength is the bounded prefix of each cleaned text that reaches a
// model. Truncation always keeps the prefix so results are reproducible.
const MaxTextLength = 512

// labelAliases maps the vocabularies the backends emit onto the closed label
// set. Keys are lower-cased; LABEL_n are the raw class names of the
// cardiffnlp RoBERTa checkpoint.
var labelAliases = map[string]models.SentimentLabel{
	"positive": models.SentimentPositive,
	"neutral":  models.SentimentNeutral,
	"negative": models.SentimentNegative,
	"label_0":  models.SentimentNegative,
	"label_1":  models.SentimentNeutral,
	"label_2":  models.SentimentPositive,
}

// NormalizeLabel maps a raw model label onto the closed set. Unknown labels
// fall back to neutral.
func NormalizeLabel(raw string) models.SentimentLabel {
	if label, ok := labelAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return label
	}
	return models.SentimentNeutral
}

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(stripTags(string(output))), " ")

	return RemoveLinks(plainText)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(input string) string {
	return tagPattern.ReplaceAllString(input, " ")
}

// Truncate keeps at most MaxTextLength runes of text.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTextLength {
		return text
	}
	return string(runes[:MaxTextLength])
}

// PrepareText is the shared normalization every backend applies before
// classification: markdown and links stripped, then the bounded prefix kept.
func PrepareText(text string) string {
	return Truncate(ConvertMarkdownToText(text))
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
