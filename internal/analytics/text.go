package analytics

import (
	"sort"
	"strings"
	"unicode"
)

// Sentiment categories for words and whole texts.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentToxic    Sentiment = "toxic"
)

// Keyword is a frequency-ranked word extracted from a set of comments.
type Keyword struct {
	Word      string    `json:"word"`
	Count     int       `json:"count"`
	Sentiment Sentiment `json:"sentiment"`
}

// SentimentStats tallies sentiment classes over a set of texts.
type SentimentStats struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Toxic    int `json:"toxic"`
}

const maxKeywords = 50

// punctuation stripped during tokenization
const punctuation = `.,!?;:()"«»—–-`

// ExtractKeywords tokenizes the texts, drops stop words and tokens shorter
// than three runes, and returns up to 50 words ranked by total frequency.
// Ties keep first-encounter order, so the ranking is deterministic for a
// given input sequence.
func ExtractKeywords(lex *Lexicon, texts []string) []Keyword {
	counts := make(map[string]int)
	var order []string

	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, word := range tokenize(text) {
			if lex.IsStopWord(word) {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	results := make([]Keyword, 0, len(order))
	for _, word := range order {
		results = append(results, Keyword{
			Word:      word,
			Count:     counts[word],
			Sentiment: lex.WordSentiment(word),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})

	if len(results) > maxKeywords {
		results = results[:maxKeywords]
	}
	return results
}

// tokenize normalizes a text to lowercase words with punctuation stripped,
// keeping only tokens longer than two runes.
func tokenize(text string) []string {
	normalized := strings.ToLower(text)
	normalized = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return ' '
		}
		return r
	}, normalized)

	var words []string
	for _, w := range strings.Fields(normalized) {
		if len([]rune(w)) > 2 {
			words = append(words, w)
		}
	}
	return words
}

// AnalyzeSentiment classifies a whole text. Texts written mostly in capitals
// or carrying more than three exclamation marks are toxic regardless of their
// wording; otherwise the lexicon decides, with a 1.5x dominance threshold
// between the positive and negative keyword counts.
func AnalyzeSentiment(lex *Lexicon, text string) Sentiment {
	if text == "" {
		return SentimentNeutral
	}

	// Toxicity is a hard override, checked against the raw text.
	var upper, total, exclamations int
	for _, r := range text {
		total++
		if unicode.IsUpper(r) {
			upper++
		}
		if r == '!' {
			exclamations++
		}
	}
	if float64(upper)/float64(total) > 0.5 || exclamations > 3 {
		return SentimentToxic
	}

	normalized := strings.ToLower(text)
	var positiveScore, negativeScore int
	for kw := range lex.positive {
		if strings.Contains(normalized, kw) {
			positiveScore++
		}
	}
	for kw := range lex.negative {
		if strings.Contains(normalized, kw) {
			negativeScore++
		}
	}

	switch {
	case float64(negativeScore) > float64(positiveScore)*1.5:
		return SentimentNegative
	case float64(positiveScore) > float64(negativeScore)*1.5:
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}

// SentimentDistribution applies AnalyzeSentiment to every text and tallies
// the results.
func SentimentDistribution(lex *Lexicon, texts []string) SentimentStats {
	var stats SentimentStats
	for _, text := range texts {
		switch AnalyzeSentiment(lex, text) {
		case SentimentPositive:
			stats.Positive++
		case SentimentNegative:
			stats.Negative++
		case SentimentToxic:
			stats.Toxic++
		default:
			stats.Neutral++
		}
	}
	return stats
}
