package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/dovira-ua/dovira/backend/internal/analytics"
	"github.com/dovira-ua/dovira/backend/internal/models"
)

// InsightsService assembles read-only analytics views over feedback history.
// All heavy lifting happens in the analytics package over in-memory
// snapshots; this service only selects the right pools.
type InsightsService struct {
	db  *gorm.DB
	lex *analytics.Lexicon
}

func NewInsightsService(db *gorm.DB, lex *analytics.Lexicon) *InsightsService {
	return &InsightsService{db: db, lex: lex}
}

// MonthlyTrendPoint is one month's average rating ("2025-07" keys).
type MonthlyTrendPoint struct {
	Month  string  `json:"month"`
	Rating float64 `json:"rating"`
}

// OfficerInsights is the full per-officer analytics view.
type OfficerInsights struct {
	OfficerID uint   `json:"officer_id"`
	Name      string `json:"name"`

	Keywords     []analytics.Keyword      `json:"keywords"`
	Sentiment    analytics.SentimentStats `json:"sentiment"`
	Hourly       []analytics.HourBucket   `json:"hourly"`
	DayOfWeek    []analytics.DayBucket    `json:"day_of_week"`
	Burnout      *analytics.BurnoutAlert  `json:"burnout,omitempty"`
	MonthlyTrend []MonthlyTrendPoint      `json:"monthly_trend"`
	Topics       *analytics.TopicReport   `json:"topics,omitempty"`
}

// GetOfficerInsights computes the analytics view for one officer.
//
// Temporal distributions and the burnout detector run over the officer's
// confirmed feedback (direct or tagged); the detector additionally only sees
// rated events, which it re-filters itself. The monthly trend spans the last
// six months of confirmed rated feedback. Topic analysis deliberately uses
// only directly linked feedback, rated or not, matching how the strengths
// and weaknesses heuristics were tuned.
func (s *InsightsService) GetOfficerInsights(officerID uint, now time.Time) (*OfficerInsights, error) {
	var officer models.Officer
	if err := s.db.First(&officer, officerID).Error; err != nil {
		return nil, fmt.Errorf("load officer %d: %w", officerID, err)
	}

	var confirmed []models.Feedback
	err := s.db.
		Where("officer_id = ? OR id IN (?)", officerID, s.taggedFeedbackIDs(officerID)).
		Where("is_confirmed = ?", true).
		Order("created_at ASC").
		Find(&confirmed).Error
	if err != nil {
		return nil, fmt.Errorf("load feedback for officer %d: %w", officerID, err)
	}

	events := make([]analytics.RatedEvent, 0, len(confirmed))
	var texts []string
	for i := range confirmed {
		fb := &confirmed[i]
		events = append(events, analytics.RatedEvent{
			OfficerID: officerID,
			Rating:    fb.RateOverall,
			CreatedAt: fb.CreatedAt,
		})
		if fb.Comment != "" {
			texts = append(texts, fb.Comment)
		}
	}

	insights := &OfficerInsights{
		OfficerID:    officerID,
		Name:         officer.FullName(),
		Keywords:     analytics.ExtractKeywords(s.lex, texts),
		Sentiment:    analytics.SentimentDistribution(s.lex, texts),
		Hourly:       analytics.HourlyDistribution(events),
		DayOfWeek:    analytics.DayOfWeekDistribution(events),
		Burnout:      analytics.DetectBurnout(officerID, officer.FullName(), events, now),
		MonthlyTrend: monthlyTrend(confirmed, now),
	}

	var direct []models.Feedback
	err = s.db.Select("comment", "rate_overall").
		Where("officer_id = ?", officerID).
		Find(&direct).Error
	if err != nil {
		return nil, fmt.Errorf("load direct feedback for officer %d: %w", officerID, err)
	}
	topicItems := make([]analytics.FeedbackText, 0, len(direct))
	for i := range direct {
		topicItems = append(topicItems, analytics.FeedbackText{Comment: direct[i].Comment, Rating: direct[i].RateOverall})
	}
	insights.Topics = analytics.AnalyzeTopics(topicItems)

	return insights, nil
}

// monthlyTrend averages confirmed rated feedback per calendar month over the
// last six months, oldest month first.
func monthlyTrend(confirmed []models.Feedback, now time.Time) []MonthlyTrendPoint {
	sixMonthsAgo := now.AddDate(0, -6, 0)

	type acc struct {
		sum   int
		count int
	}
	byMonth := make(map[string]*acc)

	for i := range confirmed {
		fb := &confirmed[i]
		if fb.RateOverall <= 0 || fb.CreatedAt.Before(sixMonthsAgo) {
			continue
		}
		month := fb.CreatedAt.Format("2006-01")
		if byMonth[month] == nil {
			byMonth[month] = &acc{}
		}
		byMonth[month].sum += fb.RateOverall
		byMonth[month].count++
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	trend := make([]MonthlyTrendPoint, 0, len(months))
	for _, m := range months {
		a := byMonth[m]
		trend = append(trend, MonthlyTrendPoint{
			Month:  m,
			Rating: round2(float64(a.sum) / float64(a.count)),
		})
	}
	return trend
}

// OfficerInteraction summarizes one citizen's encounters with one officer.
type OfficerInteraction struct {
	OfficerID   uint    `json:"officer_id"`
	BadgeNumber string  `json:"badge_number"`
	Name        string  `json:"name"`
	Count       int     `json:"count"`
	AvgScore    float64 `json:"avg_score"`
}

// CitizenProfile is the dossier view for one citizen.
type CitizenProfile struct {
	Citizen      models.Citizen            `json:"citizen"`
	Tags         []analytics.BehavioralTag `json:"tags"`
	Interactions []OfficerInteraction      `json:"interactions"`
	TotalReports int                       `json:"total_reports"`
}

// GetCitizenProfile derives behavioral tags and per-officer interaction
// summaries from the citizen's full feedback history. Unrated submissions
// count as 0 toward the interaction average; that mirrors how the dossier
// has always displayed it.
func (s *InsightsService) GetCitizenProfile(citizenID uint) (*CitizenProfile, error) {
	var citizen models.Citizen
	if err := s.db.First(&citizen, citizenID).Error; err != nil {
		return nil, fmt.Errorf("load citizen %d: %w", citizenID, err)
	}

	var history []models.Feedback
	err := s.db.Preload("TaggedOfficers").
		Where("citizen_id = ?", citizenID).
		Order("created_at ASC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("load feedback for citizen %d: %w", citizenID, err)
	}

	events := make([]analytics.RatedEvent, 0, len(history))
	for i := range history {
		events = append(events, analytics.RatedEvent{
			Rating:    history[i].RateOverall,
			CreatedAt: history[i].CreatedAt,
		})
	}

	return &CitizenProfile{
		Citizen:      citizen,
		Tags:         analytics.CitizenTags(events),
		Interactions: officerInteractions(history),
		TotalReports: len(history),
	}, nil
}

func officerInteractions(history []models.Feedback) []OfficerInteraction {
	type acc struct {
		interaction OfficerInteraction
		scoreSum    int
	}
	byOfficer := make(map[uint]*acc)
	var order []uint

	for i := range history {
		fb := &history[i]
		for j := range fb.TaggedOfficers {
			off := &fb.TaggedOfficers[j]
			a := byOfficer[off.ID]
			if a == nil {
				a = &acc{interaction: OfficerInteraction{
					OfficerID:   off.ID,
					BadgeNumber: off.BadgeNumber,
					Name:        off.FullName(),
				}}
				byOfficer[off.ID] = a
				order = append(order, off.ID)
			}
			a.interaction.Count++
			a.scoreSum += fb.RateOverall
		}
	}

	out := make([]OfficerInteraction, 0, len(order))
	for _, id := range order {
		a := byOfficer[id]
		a.interaction.AvgScore = float64(a.scoreSum) / float64(a.interaction.Count)
		out = append(out, a.interaction)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func (s *InsightsService) taggedFeedbackIDs(officerID uint) *gorm.DB {
	return s.db.Table("feedback_tagged_officers").
		Select("feedback_id").
		Where("officer_id = ?", officerID)
}
