package analytics

// BehavioralTag is a derived label for a citizen, computed on demand from
// their feedback history.
type BehavioralTag struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

const (
	frequentThreshold = 10
	criticalMeanMax   = 2.0
	loyalMeanMin      = 4.5
	nightHourFrom     = 22
	nightHourTo       = 6
)

// CitizenTags derives behavioral tags from a citizen's full feedback history.
// Tags are evaluated in a fixed order: frequent, critical/loyal (mutually
// exclusive, from the mean of rated submissions only), night. A citizen with
// no rated submissions gets neither rating tag.
func CitizenTags(events []RatedEvent) []BehavioralTag {
	var tags []BehavioralTag
	if len(events) == 0 {
		return tags
	}

	if len(events) >= frequentThreshold {
		tags = append(tags, BehavioralTag{
			ID:          "frequent",
			Label:       "Постійний заявник",
			Color:       "bg-blue-100 text-blue-700 border-blue-200",
			Description: "Подав 10 або більше звітів",
		})
	}

	var ratingSum, ratedCount int
	for _, e := range events {
		if e.Rating > 0 {
			ratingSum += e.Rating
			ratedCount++
		}
	}
	if ratedCount > 0 {
		mean := float64(ratingSum) / float64(ratedCount)
		if mean <= criticalMeanMax {
			tags = append(tags, BehavioralTag{
				ID:          "critical_reporter",
				Label:       "Критичний",
				Color:       "bg-red-100 text-red-700 border-red-200",
				Description: "Середня оцінка 2.0 або нижче",
			})
		} else if mean >= loyalMeanMin {
			tags = append(tags, BehavioralTag{
				ID:          "constructive",
				Label:       "Лояльний",
				Color:       "bg-emerald-100 text-emerald-700 border-emerald-200",
				Description: "Зазвичай дає дуже високі оцінки",
			})
		}
	}

	var nightCount int
	for _, e := range events {
		hour := e.CreatedAt.Local().Hour()
		if hour >= nightHourFrom || hour <= nightHourTo {
			nightCount++
		}
	}
	if 2*nightCount > len(events) {
		tags = append(tags, BehavioralTag{
			ID:          "night_owl",
			Label:       "Нічний птах",
			Color:       "bg-slate-800 text-white border-slate-900",
			Description: "Більшість звітів подано в нічний час",
		})
	}

	return tags
}
