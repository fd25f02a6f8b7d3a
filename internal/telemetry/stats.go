package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period        string            `json:"period"`
	EventCounts   map[EventType]int `json:"event_counts"`
	CareActions   int               `json:"care_actions"`
	HeartsEarned  int               `json:"hearts_earned"`
	HeartsSpent   int               `json:"hearts_spent"`
	GiftsClaimed  int               `json:"gifts_claimed"`
	LevelUps      int               `json:"level_ups"`
	DecayTicks    int               `json:"decay_ticks"`
	UnlocksByID   map[string]int    `json:"unlocks_by_id"`
	HeartsPerTick float64           `json:"hearts_per_tick"`
}

// CalculateStats summarizes a care session from its event log.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
		UnlocksByID: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventPetFed, EventPetCleaned, EventPetPetted, EventPoopScooped:
			stats.CareActions++
			stats.HeartsEarned += metadataInt(metadata, "hearts_delta")
		case EventHeartsEarned:
			delta := metadataInt(metadata, "amount")
			if delta >= 0 {
				stats.HeartsEarned += delta
			} else {
				stats.HeartsSpent += -delta
			}
		case EventGiftClaimed:
			stats.GiftsClaimed++
			stats.HeartsEarned += metadataInt(metadata, "amount")
		case EventItemUnlocked, EventBackgroundUnlocked:
			stats.HeartsSpent += metadataInt(metadata, "cost")
			if id, ok := metadata["id"].(string); ok {
				stats.UnlocksByID[id]++
			}
		case EventLevelUp:
			stats.LevelUps++
		case EventDecayTick:
			stats.DecayTicks++
		}
	}

	if stats.DecayTicks > 0 {
		stats.HeartsPerTick = float64(stats.HeartsEarned) / float64(stats.DecayTicks)
	}
	return stats, nil
}

func metadataInt(m EventMetadata, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
