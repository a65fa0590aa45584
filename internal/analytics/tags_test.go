package analytics

import (
	"testing"
	"time"
)

func citizenEvent(hour, rating int) RatedEvent {
	return RatedEvent{
		Rating:    rating,
		CreatedAt: time.Date(2024, 6, 3, hour, 0, 0, 0, time.Local),
	}
}

func tagIDs(tags []BehavioralTag) []string {
	ids := make([]string, len(tags))
	for i, tag := range tags {
		ids[i] = tag.ID
	}
	return ids
}

func TestCitizenTags_Empty(t *testing.T) {
	if tags := CitizenTags(nil); len(tags) != 0 {
		t.Errorf("expected no tags for empty history, got %v", tagIDs(tags))
	}
}

func TestCitizenTags_FrequentAndLoyal(t *testing.T) {
	// 11 daytime events, mean rating ~4.8
	var events []RatedEvent
	for i := 0; i < 9; i++ {
		events = append(events, citizenEvent(10, 5))
	}
	events = append(events, citizenEvent(11, 4), citizenEvent(12, 4))

	tags := CitizenTags(events)
	ids := tagIDs(tags)

	if len(ids) != 2 || ids[0] != "frequent" || ids[1] != "constructive" {
		t.Errorf("tags = %v, expected [frequent constructive]", ids)
	}
}

func TestCitizenTags_CriticalReporter(t *testing.T) {
	events := []RatedEvent{
		citizenEvent(10, 1),
		citizenEvent(11, 2),
		citizenEvent(12, 2),
	}

	tags := CitizenTags(events)
	ids := tagIDs(tags)

	if len(ids) != 1 || ids[0] != "critical_reporter" {
		t.Errorf("tags = %v, expected [critical_reporter]", ids)
	}
}

func TestCitizenTags_UnratedOnlyGetsNoRatingTag(t *testing.T) {
	events := []RatedEvent{
		citizenEvent(10, 0),
		citizenEvent(11, 0),
	}

	for _, tag := range CitizenTags(events) {
		if tag.ID == "critical_reporter" || tag.ID == "constructive" {
			t.Errorf("citizen with no rated events got rating tag %q", tag.ID)
		}
	}
}

func TestCitizenTags_MidRangeMeanGetsNoRatingTag(t *testing.T) {
	events := []RatedEvent{
		citizenEvent(10, 3),
		citizenEvent(11, 4),
	}

	tags := CitizenTags(events)
	if len(tags) != 0 {
		t.Errorf("tags = %v, expected none for mean 3.5", tagIDs(tags))
	}
}

func TestCitizenTags_NightOwl(t *testing.T) {
	events := []RatedEvent{
		citizenEvent(23, 4),
		citizenEvent(2, 4),
		citizenEvent(12, 4),
	}

	tags := CitizenTags(events)
	ids := tagIDs(tags)
	if len(ids) != 1 || ids[0] != "night_owl" {
		t.Errorf("tags = %v, expected [night_owl]", ids)
	}

	// Exactly half night events is not enough
	events = []RatedEvent{
		citizenEvent(23, 4),
		citizenEvent(12, 4),
	}
	for _, tag := range CitizenTags(events) {
		if tag.ID == "night_owl" {
			t.Error("half night events must not apply night_owl (strict majority required)")
		}
	}
}
