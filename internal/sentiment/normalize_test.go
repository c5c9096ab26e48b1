package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auralabs/aura/internal/models"
)

func TestNormalizeLabel(t *testing.T) {
	cases := []struct {
		raw  string
		want models.SentimentLabel
	}{
		{"positive", models.SentimentPositive},
		{"Positive", models.SentimentPositive},
		{"NEGATIVE", models.SentimentNegative},
		{"neutral", models.SentimentNeutral},
		{"LABEL_0", models.SentimentNegative},
		{"LABEL_1", models.SentimentNeutral},
		{"LABEL_2", models.SentimentPositive},
		{" positive ", models.SentimentPositive},
		{"5 stars", models.SentimentNeutral},
		{"", models.SentimentNeutral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeLabel(tc.raw), "raw label %q", tc.raw)
	}
}

func TestTruncate_KeepsPrefixDeterministically(t *testing.T) {
	long := strings.Repeat("a", MaxTextLength) + "TAIL"

	first := Truncate(long)
	second := Truncate(long)

	assert.Len(t, []rune(first), MaxTextLength)
	assert.Equal(t, strings.Repeat("a", MaxTextLength), first)
	assert.Equal(t, first, second)
}

func TestTruncate_ShortInputUntouched(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello"))
	assert.Equal(t, "", Truncate(""))
}

func TestTruncate_CountsRunesNotBytes(t *testing.T) {
	long := strings.Repeat("é", MaxTextLength+10)
	assert.Len(t, []rune(Truncate(long)), MaxTextLength)
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "check this out", RemoveLinks("check [this](https://example.com/x) out"))
	assert.Equal(t, "go to  now", RemoveLinks("go to https://example.com/page now"))
}

func TestConvertMarkdownToText(t *testing.T) {
	input := "# Heading\n\nSome **bold** text with a [link](https://example.com)."

	plain := ConvertMarkdownToText(input)

	assert.NotContains(t, plain, "#")
	assert.NotContains(t, plain, "**")
	assert.NotContains(t, plain, "https://example.com")
	assert.Contains(t, plain, "bold")
	assert.Contains(t, plain, "link")
}

func TestPrepareText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", PrepareText(""))
}
