package telemetry

import "time"

type EventType string

const (
	EventPetFed             EventType = "pet_fed"
	EventPetCleaned         EventType = "pet_cleaned"
	EventPetPetted          EventType = "pet_petted"
	EventPoopScooped        EventType = "poop_scooped"
	EventHeartsEarned       EventType = "hearts_earned"
	EventGiftClaimed        EventType = "gift_claimed"
	EventItemUnlocked       EventType = "item_unlocked"
	EventBackgroundUnlocked EventType = "background_unlocked"
	EventItemEquipped       EventType = "item_equipped"
	EventBackgroundSet      EventType = "background_set"
	EventOutfitSaved        EventType = "outfit_saved"
	EventLevelUp            EventType = "level_up"
	EventDecayTick          EventType = "decay_tick"
	EventStateReplaced      EventType = "state_replaced"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
