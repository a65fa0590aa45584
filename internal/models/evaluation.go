package models

import (
	"time"
)

// Evaluation types
const (
	EvaluationTypeManual          = "MANUAL"
	EvaluationTypeCitizenFeedback = "CITIZEN_FEEDBACK"
)

// Evaluation is a structured multi-dimension assessment of an officer,
// either entered by an evaluator or auto-derived from a feedback submission
// (SourceFeedbackID set, type CITIZEN_FEEDBACK).
//
// Dimension scores are 1-5; nil means the dimension was not assessed.
// For derived evaluations IsConfirmed mirrors the source feedback's flag and
// is maintained by the confirmation sync service.
type Evaluation struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	OfficerID uint     `gorm:"index;not null" json:"officer_id"`
	Officer   *Officer `gorm:"foreignKey:OfficerID;constraint:OnDelete:CASCADE" json:"officer,omitempty"`

	Evaluator string `gorm:"size:200" json:"evaluator"`
	Type      string `gorm:"size:50;not null" json:"type"`

	SourceFeedbackID *uint `gorm:"index" json:"source_feedback_id"`

	ScoreKnowledge       *int `json:"score_knowledge"`
	ScoreTactics         *int `json:"score_tactics"`
	ScoreCommunication   *int `json:"score_communication"`
	ScoreProfessionalism *int `json:"score_professionalism"`
	ScorePhysical        *int `json:"score_physical"`

	Strengths       string `gorm:"type:text" json:"strengths"`
	Weaknesses      string `gorm:"type:text" json:"weaknesses"`
	Recommendations string `gorm:"type:text" json:"recommendations"`
	Notes           string `gorm:"type:text" json:"notes"`

	IsConfirmed bool `gorm:"default:true" json:"is_confirmed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Evaluation) TableName() string { return "evaluations" }

// DimensionScores returns the non-nil, positive dimension scores.
func (e *Evaluation) DimensionScores() []int {
	var scores []int
	for _, s := range []*int{e.ScoreKnowledge, e.ScoreTactics, e.ScoreCommunication, e.ScoreProfessionalism, e.ScorePhysical} {
		if s != nil && *s > 0 {
			scores = append(scores, *s)
		}
	}
	return scores
}
