package analytics

import "strings"

// Topic keyword stems, matched as substrings of lowercased comments.
var topicStems = struct {
	professionalism []string
	communication   []string
	ethics          []string
	criticism       []string
}{
	professionalism: []string{"професійн", "грамотн", "чітк", "знає", "закон", "справ"},
	communication:   []string{"ввічлив", "культ", "вихован", "спокійн", "приємн", "слуха"},
	ethics:          []string{"чесн", "справедлив", "людян", "допомо"},
	criticism:       []string{"груб", "нецензурн", "хам", "ігнор", "повільн", "некомпетент"},
}

// FeedbackText pairs a comment with its overall rating for topic analysis.
type FeedbackText struct {
	Comment string
	Rating  int
}

// TopicCounts tallies feedback mentioning each topic family.
type TopicCounts struct {
	Professionalism int `json:"professionalism"`
	Communication   int `json:"communication"`
	Ethics          int `json:"ethics"`
	Criticism       int `json:"criticism"`
}

// TopicReport summarizes an officer's feedback into rating-based sentiment,
// topic mentions and derived strength/weakness statements.
type TopicReport struct {
	Sentiment  SentimentStats `json:"sentiment"`
	Topics     TopicCounts    `json:"topics"`
	Strengths  []string       `json:"strengths"`
	Weaknesses []string       `json:"weaknesses"`
}

// AnalyzeTopics scans feedback comments for topic keyword families and
// derives strengths and weaknesses when a topic is mentioned often enough
// (a third of all feedback for strengths, a fifth for the criticism
// weakness). Returns nil when there is no feedback to analyze.
func AnalyzeTopics(items []FeedbackText) *TopicReport {
	if len(items) == 0 {
		return nil
	}

	report := &TopicReport{
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	for _, item := range items {
		// Sentiment here is rating-based, not lexicon-based.
		switch {
		case item.Rating >= 4:
			report.Sentiment.Positive++
		case item.Rating >= 3:
			report.Sentiment.Neutral++
		default:
			report.Sentiment.Negative++
		}

		comment := strings.ToLower(item.Comment)
		if containsAny(comment, topicStems.professionalism) {
			report.Topics.Professionalism++
		}
		if containsAny(comment, topicStems.communication) {
			report.Topics.Communication++
		}
		if containsAny(comment, topicStems.ethics) {
			report.Topics.Ethics++
		}
		if containsAny(comment, topicStems.criticism) {
			report.Topics.Criticism++
		}
	}

	total := len(items)
	if report.Topics.Professionalism > total/3 {
		report.Strengths = append(report.Strengths, "Високий рівень професіоналізму")
	}
	if report.Topics.Communication > total/3 {
		report.Strengths = append(report.Strengths, "Ввічлива комунікація з громадянами")
	}
	if report.Topics.Ethics > total/3 {
		report.Strengths = append(report.Strengths, "Справедливість та людяність")
	}
	if report.Topics.Criticism > total/5 {
		report.Weaknesses = append(report.Weaknesses, "Скарги на манеру спілкування або швидкість")
	}

	return report
}

func containsAny(s string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}
