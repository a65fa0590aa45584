package analytics

import "time"

// Trend direction of an officer's ratings across the rolling windows.
type Trend string

const (
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
	TrendImproving Trend = "improving"
)

// AlertLevel of a burnout signal.
type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

// BurnoutAlert is the trend snapshot for one officer. It is derived on
// demand and never persisted.
type BurnoutAlert struct {
	OfficerID     uint       `json:"officer_id"`
	OfficerName   string     `json:"officer_name"`
	CurrentRating float64    `json:"current_rating"`
	Trend         Trend      `json:"trend"`
	Last30Days    float64    `json:"last_30_days"`
	Last60Days    float64    `json:"last_60_days"`
	Last90Days    float64    `json:"last_90_days"`
	AlertLevel    AlertLevel `json:"alert_level"`
}

const (
	burnoutMinEvents  = 5
	burnoutDeltaLimit = 0.3
)

// DetectBurnout compares an officer's average ratings across the last
// 30/60/90 days. Callers pre-filter the event pool for confirmation; this
// function only drops other officers' events and unrated entries. Fewer than
// five rated events is not enough signal and yields nil.
//
// Each window is a lower bound: the 90-day average includes everything since
// now-90d. The deltas are computed older-window minus newer-window, so a
// positive delta means recent ratings are lower. That sign convention is
// long-standing in the callers and is kept as-is.
func DetectBurnout(officerID uint, officerName string, events []RatedEvent, now time.Time) *BurnoutAlert {
	var own []RatedEvent
	for _, e := range events {
		if e.OfficerID == officerID && e.Rating > 0 {
			own = append(own, e)
		}
	}
	if len(own) < burnoutMinEvents {
		return nil
	}

	avgSince := func(start time.Time) float64 {
		var sum, count int
		for _, e := range own {
			if !e.CreatedAt.Before(start) {
				sum += e.Rating
				count++
			}
		}
		if count == 0 {
			return 0
		}
		return float64(sum) / float64(count)
	}

	last30 := avgSince(now.AddDate(0, 0, -30))
	last60 := avgSince(now.AddDate(0, 0, -60))
	last90 := avgSince(now.AddDate(0, 0, -90))

	trend := TrendStable
	alertLevel := AlertNone

	delta30to60 := last60 - last30
	delta60to90 := last90 - last60

	if delta30to60 > burnoutDeltaLimit && delta60to90 > burnoutDeltaLimit {
		trend = TrendDeclining
		if last30 < 3 {
			alertLevel = AlertCritical
		} else {
			alertLevel = AlertWarning
		}
	} else if delta30to60 < -burnoutDeltaLimit && delta60to90 < -burnoutDeltaLimit {
		trend = TrendImproving
	}

	return &BurnoutAlert{
		OfficerID:     officerID,
		OfficerName:   officerName,
		CurrentRating: last30,
		Trend:         trend,
		Last30Days:    last30,
		Last60Days:    last60,
		Last90Days:    last90,
		AlertLevel:    alertLevel,
	}
}
