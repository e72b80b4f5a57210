// Package annotate tags review text with a coarse sentiment and topic keywords
// using fixed word tables. Functions are pure and safe for concurrent use.
package annotate

import (
	"slices"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Label is the coarse sentiment of a text
type Label string

const (
	// Positive means more positive words than negative ones
	Positive Label = "positive"
	// Negative means more negative words than positive ones
	Negative Label = "negative"
	// Neutral covers ties, empty text and text with no table words
	Neutral Label = "neutral"
)

var (
	positiveWords = []string{"好", "棒", "赞", "满意", "喜欢", "推荐", "优秀", "完美", "不错"}
	negativeWords = []string{"差", "坏", "烂", "垃圾", "失望", "后悔", "问题", "投诉", "退货"}
	keywordWords  = []string{"包装", "质量", "味道", "价格", "物流", "服务", "新鲜", "好吃", "满意", "推荐"}
)

// table is an ordered word list with a matcher built once
type table struct {
	words []string
	m     *ahocorasick.Matcher
}

func newTable(words []string) table {
	return table{words: words, m: ahocorasick.NewStringMatcher(words)}
}

// hits returns the indices of table words present in text, ascending, each once
func (t table) hits(text string) []int {
	if text == "" {
		return nil
	}
	idx := t.m.MatchThreadSafe([]byte(text))
	slices.Sort(idx)
	return slices.Compact(idx)
}

var (
	positive = newTable(positiveWords)
	negative = newTable(negativeWords)
	keywords = newTable(keywordWords)
)

// Sentiment counts distinct positive and negative words, the strictly larger side wins
func Sentiment(text string) Label {
	p := len(positive.hits(text))
	n := len(negative.hits(text))
	switch {
	case p > n:
		return Positive
	case n > p:
		return Negative
	default:
		return Neutral
	}
}

// Keywords returns the table keywords found in text, in table order and never nil
func Keywords(text string) []string {
	idx := keywords.hits(text)
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, keywords.words[i])
	}
	return out
}

// PositiveWords returns a copy of the positive table
func PositiveWords() []string { return slices.Clone(positiveWords) }

// NegativeWords returns a copy of the negative table
func NegativeWords() []string { return slices.Clone(negativeWords) }

// KeywordTable returns a copy of the keyword table
func KeywordTable() []string { return slices.Clone(keywordWords) }
