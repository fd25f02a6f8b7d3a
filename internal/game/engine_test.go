package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rabbitcare/internal/config"
	"rabbitcare/internal/telemetry"
)

func newEngineForTest(t *testing.T, opts Options) (*Engine, *FakeClock) {
	t.Helper()

	fake := NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if opts.Clock == nil {
		opts.Clock = fake
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Tuning == (config.Tuning{}) {
		opts.Tuning = config.Default()
	}
	return NewEngine(opts), fake
}

func TestCareActionsKeepStatsInRange(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	// Arbitrary interleaving of care actions and decay ticks must never
	// push any stat outside [0,2].
	check := func() {
		s := e.Snapshot()
		for name, v := range map[string]int{"hunger": s.HungerLevel, "clean": s.CleanLevel, "happy": s.HappyLevel} {
			assert.GreaterOrEqual(t, v, MinCareLevel, name)
			assert.LessOrEqual(t, v, MaxCareLevel, name)
		}
	}

	for i := 0; i < 10; i++ {
		e.Feed()
		check()
		e.Feed() // happy already maxed; must stay capped
		check()
		e.DecayTick()
		e.DecayTick()
		e.DecayTick()
		check()
		e.Clean()
		check()
		e.Pet()
		check()
	}
}

func TestFeedSemantics(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	// Run hunger and happiness down first.
	for i := 0; i < 3; i++ {
		e.DecayTick()
	}
	before := e.Snapshot()
	require.Equal(t, 0, before.HungerLevel)

	res := e.Feed()
	s := e.Snapshot()
	assert.Equal(t, MaxCareLevel, s.HungerLevel)
	assert.Equal(t, before.HappyLevel+1, s.HappyLevel)
	assert.Equal(t, 5, res.HeartsDelta)
	assert.Equal(t, before.Hearts+5, s.Hearts)
}

func TestCleanClearsPoops(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	for i := 0; i < 4; i++ {
		e.DecayTick()
	}
	require.NotEmpty(t, e.Snapshot().Poops)

	e.Clean()
	s := e.Snapshot()
	assert.Empty(t, s.Poops)
	assert.Equal(t, MaxCareLevel, s.CleanLevel)
}

func TestScoopPoop(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	e.DecayTick() // clean drops below max, spawns poop id 1
	s := e.Snapshot()
	require.Len(t, s.Poops, 1)
	require.Equal(t, 1, s.Poops[0].ID)

	res := e.ScoopPoop(1)
	assert.Equal(t, 2, res.HeartsDelta)

	s = e.Snapshot()
	assert.Empty(t, s.Poops)
	assert.Equal(t, 2, s.Hearts)

	// Unknown id is a no-op.
	res = e.ScoopPoop(999)
	assert.Equal(t, 0, res.HeartsDelta)
	assert.Equal(t, 2, e.Snapshot().Hearts)
}

func TestPoopCapHonored(t *testing.T) {
	tune := config.Default()
	tune.PoopCap = 3
	e, _ := newEngineForTest(t, Options{Tuning: tune})

	for i := 0; i < 10; i++ {
		e.DecayTick()
	}
	assert.Len(t, e.Snapshot().Poops, 3)
}

func TestLevelingCheckpoints(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	s := e.Snapshot()
	require.Equal(t, 1, s.Level)
	require.Equal(t, 0, s.TotalHeartsEarned)

	res := e.EarnHearts(100)
	assert.Equal(t, 2, res.Level)
	assert.True(t, res.LeveledUp)

	// 300 lifetime total = 100 (level 2) + 200 (level 3).
	res = e.EarnHearts(200)
	assert.Equal(t, 3, res.Level)
	assert.Equal(t, 300, e.Snapshot().TotalHeartsEarned)
}

func TestSpendingNeverLowersLevel(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	e.EarnHearts(100)
	require.Equal(t, 2, e.Snapshot().Level)

	res := e.EarnHearts(-100)
	assert.Equal(t, 0, res.Hearts)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, 100, e.Snapshot().TotalHeartsEarned)

	// Overdrawing floors the balance at 0 instead of going negative.
	res = e.EarnHearts(-50)
	assert.Equal(t, 0, res.Hearts)
	assert.Equal(t, 2, res.Level)
}

func TestUnlockItem(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	// Not affordable: state unchanged.
	res := e.UnlockItem("blue-hat")
	assert.False(t, res.Unlocked)
	assert.Empty(t, e.Snapshot().UnlockedItems)

	e.EarnHearts(60)
	res = e.UnlockItem("blue-hat")
	assert.True(t, res.Unlocked)
	assert.Equal(t, 50, res.Cost)
	assert.Equal(t, 10, res.Hearts)
	assert.Equal(t, []string{"blue-hat"}, e.Snapshot().UnlockedItems)

	// Repeat unlock: no-op, no second deduction.
	res = e.UnlockItem("blue-hat")
	assert.False(t, res.Unlocked)
	assert.True(t, res.Already)
	assert.Equal(t, 10, e.Snapshot().Hearts)

	// Unknown item: no-op.
	res = e.UnlockItem("nonexistent")
	assert.False(t, res.Unlocked)
	assert.Equal(t, 10, e.Snapshot().Hearts)
}

func TestUnlockBackgroundAndSetBackground(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	// Locked background cannot be selected.
	assert.False(t, e.SetBackground("garden"))
	assert.Equal(t, "room", e.Snapshot().CurrentBackground)

	e.EarnHearts(150)
	res := e.UnlockBackground("garden")
	require.True(t, res.Unlocked)
	assert.Equal(t, 100, res.Cost)
	assert.Equal(t, 50, res.Hearts)

	assert.True(t, e.SetBackground("garden"))
	assert.Equal(t, "garden", e.Snapshot().CurrentBackground)

	// Unknown background is rejected.
	assert.False(t, e.SetBackground("moon"))
}

func TestEquipItemRevalidatesUnlocks(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	// Not unlocked: rejected.
	assert.False(t, e.EquipItem("blue-hat", SlotHead))

	e.EarnHearts(200)
	require.True(t, e.UnlockItem("blue-hat").Unlocked)
	require.True(t, e.UnlockItem("carrot-wand").Unlocked)

	assert.True(t, e.EquipItem("blue-hat", SlotHead))
	assert.Equal(t, "blue-hat", e.Snapshot().Equipment.Head)

	// Wrong slot for the item: rejected.
	assert.False(t, e.EquipItem("carrot-wand", SlotHead))
	assert.Equal(t, "blue-hat", e.Snapshot().Equipment.Head)

	// Clearing a slot always works.
	assert.True(t, e.EquipItem("", SlotHead))
	assert.Empty(t, e.Snapshot().Equipment.Head)

	assert.False(t, e.EquipItem("blue-hat", Slot("tail")))
}

func TestClaimDailyGift(t *testing.T) {
	e, fake := newEngineForTest(t, Options{})

	res := e.ClaimDailyGift()
	assert.GreaterOrEqual(t, res.Amount, 50)
	assert.LessOrEqual(t, res.Amount, 100)

	before := e.Snapshot()

	// Second claim inside the cooldown: amount 0, nothing else changes.
	res = e.ClaimDailyGift()
	assert.Equal(t, 0, res.Amount)
	assert.Equal(t, before, e.Snapshot())

	// After the cooldown the gift is claimable again.
	fake.Advance(24*time.Hour + time.Minute)
	res = e.ClaimDailyGift()
	assert.GreaterOrEqual(t, res.Amount, 50)
	assert.LessOrEqual(t, res.Amount, 100)
}

func TestDecayAlwaysMode(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	res := e.DecayTick()
	assert.True(t, res.Applied)
	s := e.Snapshot()
	assert.Equal(t, 1, s.HungerLevel)
	assert.Equal(t, 1, s.CleanLevel)
	// Neither stat at 0 yet: happiness holds.
	assert.Equal(t, 2, s.HappyLevel)

	e.DecayTick()
	s = e.Snapshot()
	assert.Equal(t, 0, s.HungerLevel)
	assert.Equal(t, 1, s.HappyLevel)
}

func TestDecayIdleOnlyMode(t *testing.T) {
	tune := config.Default()
	tune.DecayMode = config.DecayIdleOnly
	e, fake := newEngineForTest(t, Options{Tuning: tune})

	// Within the idle gate: no decay.
	res := e.DecayTick()
	assert.False(t, res.Applied)
	assert.Equal(t, 2, e.Snapshot().HungerLevel)

	// Past the gate: one decay step, and the idle timer resets so the
	// next immediate tick does nothing.
	fake.Advance(3 * time.Minute)
	res = e.DecayTick()
	assert.True(t, res.Applied)
	assert.Equal(t, 1, e.Snapshot().HungerLevel)

	res = e.DecayTick()
	assert.False(t, res.Applied)
	assert.Equal(t, 1, e.Snapshot().HungerLevel)
}

func TestSaveOutfitReplacesWholesaleAndMintsIDs(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	e.SaveOutfit([]PlacedItem{
		{UIID: "keep-me", ItemID: "star-cape", X: 10, Y: 20, Scale: 2, ZIndex: 1},
		{ItemID: "blue-hat", X: 50, Y: 50},
	})

	s := e.Snapshot()
	require.Len(t, s.PlacedItems, 2)
	assert.Equal(t, "keep-me", s.PlacedItems[0].UIID)
	assert.NotEmpty(t, s.PlacedItems[1].UIID)
	assert.Equal(t, 1.0, s.PlacedItems[1].Scale)

	e.SaveOutfit(nil)
	assert.Empty(t, e.Snapshot().PlacedItems)
}

func TestActionsUpdateLastInteraction(t *testing.T) {
	e, fake := newEngineForTest(t, Options{})

	start := e.Snapshot().LastInteraction
	fake.Advance(time.Minute)
	e.Pet()
	assert.Greater(t, e.Snapshot().LastInteraction, start)
}

func TestEngineRecordsTelemetry(t *testing.T) {
	events := telemetry.NewMemoryRepository()
	e, _ := newEngineForTest(t, Options{Events: events})

	e.Feed()
	e.EarnHearts(100) // level up
	e.DecayTick()

	got, err := events.GetEvents(time.Time{}, nil)
	require.NoError(t, err)

	types := map[telemetry.EventType]int{}
	for _, ev := range got {
		types[ev.Type]++
	}
	assert.Equal(t, 1, types[telemetry.EventPetFed])
	assert.Equal(t, 1, types[telemetry.EventHeartsEarned])
	assert.Equal(t, 1, types[telemetry.EventLevelUp])
	assert.Equal(t, 1, types[telemetry.EventDecayTick])
}

func TestReplaceStateNormalizes(t *testing.T) {
	e, _ := newEngineForTest(t, Options{})

	e.ReplaceState(State{
		HungerLevel:       7,
		CleanLevel:        -3,
		HappyLevel:        1,
		Hearts:            -10,
		TotalHeartsEarned: 150,
		CurrentBackground: "garden", // not unlocked in the incoming blob
		Equipment:         Equipment{Head: "blue-hat"},
	})

	s := e.Snapshot()
	assert.Equal(t, 2, s.HungerLevel)
	assert.Equal(t, 0, s.CleanLevel)
	assert.Equal(t, 0, s.Hearts)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, "room", s.CurrentBackground)
	assert.Empty(t, s.Equipment.Head)
}
