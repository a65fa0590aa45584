package analytics

import "testing"

func TestAnalyzeTopics_Empty(t *testing.T) {
	if report := AnalyzeTopics(nil); report != nil {
		t.Errorf("expected nil report for empty input, got %+v", report)
	}
}

func TestAnalyzeTopics_SentimentByRating(t *testing.T) {
	report := AnalyzeTopics([]FeedbackText{
		{Comment: "все добре", Rating: 5},
		{Comment: "нормально", Rating: 3},
		{Comment: "погано", Rating: 1},
	})
	if report == nil {
		t.Fatal("expected a report")
	}

	if report.Sentiment.Positive != 1 || report.Sentiment.Neutral != 1 || report.Sentiment.Negative != 1 {
		t.Errorf("sentiment = %+v, expected 1/1/1", report.Sentiment)
	}
}

func TestAnalyzeTopics_StrengthsAndWeaknesses(t *testing.T) {
	report := AnalyzeTopics([]FeedbackText{
		{Comment: "дуже професійний підхід", Rating: 5},
		{Comment: "грамотний та чіткий", Rating: 5},
		{Comment: "грубе поводження", Rating: 1},
	})
	if report == nil {
		t.Fatal("expected a report")
	}

	if report.Topics.Professionalism != 2 {
		t.Errorf("professionalism mentions = %d, expected 2", report.Topics.Professionalism)
	}
	if report.Topics.Criticism != 1 {
		t.Errorf("criticism mentions = %d, expected 1", report.Topics.Criticism)
	}

	// 2 of 3 > 1/3 of feedback mentions professionalism
	if len(report.Strengths) != 1 {
		t.Errorf("strengths = %v, expected one entry", report.Strengths)
	}
	// 1 of 3 > 1/5 of feedback mentions criticism
	if len(report.Weaknesses) != 1 {
		t.Errorf("weaknesses = %v, expected one entry", report.Weaknesses)
	}
}
