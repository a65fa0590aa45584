package analytics

import "time"

// RatedEvent is the minimal view of a feedback submission the pure analytics
// layer works on. Callers are responsible for any confirmation filtering;
// this package only knows about ratings and timestamps.
type RatedEvent struct {
	OfficerID uint
	Rating    int
	CreatedAt time.Time
}

// HourBucket aggregates rated events for one hour of the day.
type HourBucket struct {
	Hour          int     `json:"hour"`
	Count         int     `json:"count"`
	RatingSum     int     `json:"rating_sum"`
	AvgRating     float64 `json:"avg_rating"`
	NegativeCount int     `json:"negative_count"`
}

// DayBucket aggregates rated events for one day of the week.
type DayBucket struct {
	Day       string  `json:"day"`
	DayIndex  int     `json:"day_index"`
	Count     int     `json:"count"`
	RatingSum int     `json:"rating_sum"`
	AvgRating float64 `json:"avg_rating"`
}

// Short Ukrainian day labels, Sunday first to match time.Weekday indexing.
var dayLabels = [7]string{"Нд", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// HourlyDistribution buckets rated events by hour of day in local time.
// Always returns exactly 24 buckets; unrated events (rating 0) contribute to
// none of them. Ratings below 3 count toward NegativeCount.
func HourlyDistribution(events []RatedEvent) []HourBucket {
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}

	for _, e := range events {
		if e.Rating == 0 {
			continue
		}
		h := e.CreatedAt.Local().Hour()
		buckets[h].Count++
		buckets[h].RatingSum += e.Rating
		if e.Rating < 3 {
			buckets[h].NegativeCount++
		}
	}

	for h := range buckets {
		if buckets[h].Count > 0 {
			buckets[h].AvgRating = float64(buckets[h].RatingSum) / float64(buckets[h].Count)
		}
	}
	return buckets
}

// DayOfWeekDistribution buckets rated events by weekday in local time.
// Always returns exactly 7 buckets, Sunday through Saturday.
func DayOfWeekDistribution(events []RatedEvent) []DayBucket {
	buckets := make([]DayBucket, 7)
	for d := range buckets {
		buckets[d].Day = dayLabels[d]
		buckets[d].DayIndex = d
	}

	for _, e := range events {
		if e.Rating == 0 {
			continue
		}
		d := int(e.CreatedAt.Local().Weekday())
		buckets[d].Count++
		buckets[d].RatingSum += e.Rating
	}

	for d := range buckets {
		if buckets[d].Count > 0 {
			buckets[d].AvgRating = float64(buckets[d].RatingSum) / float64(buckets[d].Count)
		}
	}
	return buckets
}
