package analytics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the word lists driving keyword extraction and sentiment
// classification. It is injected into every text analytics call so the lists
// can be tuned or localized without code changes.
type Lexicon struct {
	stopWords map[string]struct{}
	positive  map[string]struct{}
	negative  map[string]struct{}
}

// lexiconFile is the YAML shape of an external lexicon file.
type lexiconFile struct {
	StopWords []string `yaml:"stop_words"`
	Positive  []string `yaml:"positive"`
	Negative  []string `yaml:"negative"`
}

// NewLexicon builds a Lexicon from explicit word lists.
func NewLexicon(stopWords, positive, negative []string) *Lexicon {
	return &Lexicon{
		stopWords: toSet(stopWords),
		positive:  toSet(positive),
		negative:  toSet(negative),
	}
}

// LoadLexicon reads a lexicon from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	return NewLexicon(f.StopWords, f.Positive, f.Negative), nil
}

// DefaultLexicon returns the built-in Ukrainian lexicon.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultStopWords, defaultPositive, defaultNegative)
}

func (l *Lexicon) IsStopWord(w string) bool {
	_, ok := l.stopWords[w]
	return ok
}

// WordSentiment classifies a single word by lexicon membership.
func (l *Lexicon) WordSentiment(w string) Sentiment {
	if _, ok := l.negative[w]; ok {
		return SentimentNegative
	}
	if _, ok := l.positive[w]; ok {
		return SentimentPositive
	}
	return SentimentNeutral
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Common Ukrainian words excluded from keyword analysis.
var defaultStopWords = []string{
	"в", "на", "і", "з", "до", "від", "за", "по", "це", "що", "як", "не", "та", "у",
	"він", "вона", "вони", "який", "була", "був", "були", "буде", "є", "мене", "мені",
	"для", "або", "але", "ще", "вже", "дуже", "так", "все", "всі", "коли", "де", "чому",
	"той", "тому", "через", "про", "під", "над", "між", "при", "без",
}

var defaultNegative = []string{
	"грубість", "грубий", "грубо", "хамство", "хам", "нахабний", "агресія", "агресивний",
	"вимагання", "вимагає", "корупція", "хабар", "неадекватний", "неадекватність",
	"погрози", "погрожує", "лайка", "кричить", "кричав", "образа", "образливий",
	"черга", "чекати", "очікування", "повільно", "довго", "втомився", "втомлений",
	"ігнорує", "ігнорування", "байдужість", "байдужий", "некомпетентний", "некомпетентність",
	"п'яний", "алкоголь", "непрофесійний", "безвідповідальний", "безвідповідальність",
}

var defaultPositive = []string{
	"дякую", "вдячний", "вдячність", "вдячна", "професіонал", "професійний",
	"ввічливий", "ввічливість", "вихований", "допоміг", "допомога", "допомогли",
	"швидко", "швидкість", "оперативно", "оперативність", "молодець", "молодці",
	"відмінно", "чудово", "прекрасно", "супер", "розумний", "розуміння", "підтримка",
	"турбота", "уважний", "увага", "компетентний", "компетентність", "знає", "вміє",
}
