package game

import "rabbitcare/internal/catalog"

// Care levels are a three-step scale: 0 = bad, 2 = best.
const (
	MinCareLevel = 0
	MaxCareLevel = 2
)

// Slot is one of the three fixed equipment attachment points.
type Slot string

const (
	SlotHead Slot = "head"
	SlotBody Slot = "body"
	SlotHand Slot = "hand"
)

// ValidSlot reports whether s names a known equipment slot.
func ValidSlot(s Slot) bool {
	switch s {
	case SlotHead, SlotBody, SlotHand:
		return true
	}
	return false
}

// Equipment maps each slot to the equipped item id, empty when bare.
type Equipment struct {
	Head string `json:"head,omitempty"`
	Body string `json:"body,omitempty"`
	Hand string `json:"hand,omitempty"`
}

// Get returns the item equipped in slot.
func (e Equipment) Get(slot Slot) string {
	switch slot {
	case SlotHead:
		return e.Head
	case SlotBody:
		return e.Body
	case SlotHand:
		return e.Hand
	}
	return ""
}

// Set places itemID in slot (empty itemID clears it).
func (e *Equipment) Set(slot Slot, itemID string) {
	switch slot {
	case SlotHead:
		e.Head = itemID
	case SlotBody:
		e.Body = itemID
	case SlotHand:
		e.Hand = itemID
	}
}

// PlacedItem is a freely positioned decoration sticker. Coordinates are
// percentages of the scene, scale is a positive factor, rotation is degrees.
type PlacedItem struct {
	UIID     string  `json:"uiId"`
	ItemID   string  `json:"itemId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`
}

// Poop is a transient nuisance marker on the scene.
type Poop struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// State is the single authoritative aggregate of a player's game. The json
// tags are the wire format shared with the remote save store and must not
// change without a schema version bump in internal/store.
type State struct {
	ID string `json:"id"`

	HungerLevel int `json:"hungerLevel"`
	CleanLevel  int `json:"cleanLevel"`
	HappyLevel  int `json:"happyLevel"`

	Hearts            int `json:"hearts"`
	Level             int `json:"level"`
	TotalHeartsEarned int `json:"totalHeartsEarned"`

	Equipment   Equipment    `json:"equipment"`
	PlacedItems []PlacedItem `json:"placedItems"`
	Poops       []Poop       `json:"poops"`

	CurrentBackground   string   `json:"currentBackground"`
	UnlockedItems       []string `json:"unlockedItems"`
	UnlockedBackgrounds []string `json:"unlockedBackgrounds"`

	// Epoch milliseconds.
	LastInteraction int64 `json:"lastInteraction"`
	LastGiftClaimed int64 `json:"lastGiftClaimed"`
	LastSaveTime    int64 `json:"lastSaveTime"`
}

// DefaultState returns a fresh first-run state. nowMS is epoch milliseconds.
func DefaultState(nowMS int64) State {
	return State{
		HungerLevel:         MaxCareLevel,
		CleanLevel:          MaxCareLevel,
		HappyLevel:          MaxCareLevel,
		Hearts:              0,
		Level:               1,
		TotalHeartsEarned:   0,
		PlacedItems:         []PlacedItem{},
		Poops:               []Poop{},
		CurrentBackground:   catalog.DefaultBackground,
		UnlockedItems:       []string{},
		UnlockedBackgrounds: []string{catalog.DefaultBackground},
		LastInteraction:     nowMS,
	}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.PlacedItems = append([]PlacedItem{}, s.PlacedItems...)
	out.Poops = append([]Poop{}, s.Poops...)
	out.UnlockedItems = append([]string{}, s.UnlockedItems...)
	out.UnlockedBackgrounds = append([]string{}, s.UnlockedBackgrounds...)
	return out
}

// HasUnlockedItem reports whether the item id has been unlocked.
func (s State) HasUnlockedItem(id string) bool {
	for _, u := range s.UnlockedItems {
		if u == id {
			return true
		}
	}
	return false
}

// HasUnlockedBackground reports whether the background id has been unlocked.
func (s State) HasUnlockedBackground(id string) bool {
	for _, u := range s.UnlockedBackgrounds {
		if u == id {
			return true
		}
	}
	return false
}

// Normalize clamps and repairs a state loaded from an untrusted blob so a
// partially valid save cannot smuggle out-of-range values past the
// invariants. Missing collection fields become empty, an unknown or locked
// current background falls back to the default, and equipped items that are
// not unlocked are removed.
func Normalize(s State, nowMS int64) State {
	s.HungerLevel = clampLevel(s.HungerLevel)
	s.CleanLevel = clampLevel(s.CleanLevel)
	s.HappyLevel = clampLevel(s.HappyLevel)

	if s.Hearts < 0 {
		s.Hearts = 0
	}
	if s.TotalHeartsEarned < 0 {
		s.TotalHeartsEarned = 0
	}
	if lvl := LevelFor(s.TotalHeartsEarned); s.Level < lvl {
		s.Level = lvl
	}
	if s.Level < 1 {
		s.Level = 1
	}

	if s.PlacedItems == nil {
		s.PlacedItems = []PlacedItem{}
	}
	if s.Poops == nil {
		s.Poops = []Poop{}
	}
	if s.UnlockedItems == nil {
		s.UnlockedItems = []string{}
	}
	if s.UnlockedBackgrounds == nil {
		s.UnlockedBackgrounds = []string{}
	}
	if !s.HasUnlockedBackground(catalog.DefaultBackground) {
		s.UnlockedBackgrounds = append(s.UnlockedBackgrounds, catalog.DefaultBackground)
	}
	if s.CurrentBackground == "" || !s.HasUnlockedBackground(s.CurrentBackground) {
		s.CurrentBackground = catalog.DefaultBackground
	}

	for _, slot := range []Slot{SlotHead, SlotBody, SlotHand} {
		if id := s.Equipment.Get(slot); id != "" && !s.HasUnlockedItem(id) {
			s.Equipment.Set(slot, "")
		}
	}

	if s.LastInteraction <= 0 {
		s.LastInteraction = nowMS
	}
	if s.LastGiftClaimed < 0 {
		s.LastGiftClaimed = 0
	}
	return s
}

func clampLevel(v int) int {
	if v < MinCareLevel {
		return MinCareLevel
	}
	if v > MaxCareLevel {
		return MaxCareLevel
	}
	return v
}
