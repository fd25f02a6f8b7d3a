package game

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"rabbitcare/internal/catalog"
	"rabbitcare/internal/config"
	"rabbitcare/internal/telemetry"
)

// StateStore is the local persistence the engine writes through to after
// every state-affecting action. Failures are logged, never surfaced: the
// game keeps playing on the in-memory state.
type StateStore interface {
	Save(State) error
}

// Options configures an Engine. All collaborators are explicit so multiple
// engines (tests, several players) never share ambient state.
type Options struct {
	Catalog *catalog.Catalog
	Tuning  config.Tuning
	Store   StateStore
	Clock   Clock
	Logger  *log.Logger
	Events  telemetry.Repository
	Rand    *rand.Rand
	Initial *State

	// OnChange is invoked after every committed state change, outside the
	// engine lock. Used by the sync coordinator and UI refresh.
	OnChange func()
}

// Engine owns the game state and is its sole writer. User actions and the
// decay ticker both funnel through the engine mutex, so every mutation reads
// and writes one consistent snapshot.
type Engine struct {
	mu sync.Mutex
	st State

	catalog  *catalog.Catalog
	tune     config.Tuning
	store    StateStore
	clock    Clock
	logger   *log.Logger
	events   telemetry.Repository
	rng      *rand.Rand
	onChange func()

	nextPoopID int

	tickCancel chan struct{}
	tickDone   chan struct{}
}

// NewEngine builds an engine. A nil Initial state starts a fresh game;
// non-nil states (from the local store or remote reconciliation) are
// normalized before use.
func NewEngine(opts Options) *Engine {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	opts.Tuning.ApplyDefaults()

	nowMS := EpochMS(opts.Clock.Now())
	st := DefaultState(nowMS)
	if opts.Initial != nil {
		st = Normalize(*opts.Initial, nowMS)
	}

	e := &Engine{
		st:       st,
		catalog:  opts.Catalog,
		tune:     opts.Tuning,
		store:    opts.Store,
		clock:    opts.Clock,
		logger:   opts.Logger,
		events:   opts.Events,
		rng:      opts.Rand,
		onChange: opts.OnChange,
	}
	e.nextPoopID = maxPoopID(st.Poops) + 1
	return e
}

func maxPoopID(poops []Poop) int {
	maxID := 0
	for _, p := range poops {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID
}

// ActionResult reports the economy effect of a care action.
type ActionResult struct {
	HeartsDelta int  `json:"hearts_delta"`
	Hearts      int  `json:"hearts"`
	Level       int  `json:"level"`
	LeveledUp   bool `json:"leveled_up"`
}

// GiftResult reports a daily gift claim. Amount is 0 when the cooldown has
// not elapsed.
type GiftResult struct {
	Amount int `json:"amount"`
	Hearts int `json:"hearts"`
}

// UnlockResult reports an unlock attempt.
type UnlockResult struct {
	Unlocked bool `json:"unlocked"`
	Already  bool `json:"already"`
	Cost     int  `json:"cost"`
	Hearts   int  `json:"hearts"`
}

// DecayResult reports one decay tick.
type DecayResult struct {
	Applied     bool `json:"applied"`
	HungerLevel int  `json:"hungerLevel"`
	CleanLevel  int  `json:"cleanLevel"`
	HappyLevel  int  `json:"happyLevel"`
	PoopSpawned bool `json:"poop_spawned"`
	PoopCount   int  `json:"poop_count"`
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Clone()
}

// ReplaceState overwrites the whole state, normalizing first. Used by sync
// reconciliation when the remote snapshot wins.
func (e *Engine) ReplaceState(s State) {
	e.mu.Lock()
	e.st = Normalize(s, EpochMS(e.clock.Now()))
	e.nextPoopID = maxPoopID(e.st.Poops) + 1
	e.persistLocked()
	e.mu.Unlock()

	e.record(telemetry.EventStateReplaced, nil)
	e.notify()
}

// Reset reinitializes the state to first-run defaults.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.st = DefaultState(EpochMS(e.clock.Now()))
	e.nextPoopID = 1
	e.persistLocked()
	e.mu.Unlock()
	e.notify()
}

// Feed refills hunger, cheers the pet up one step and awards hearts.
func (e *Engine) Feed() ActionResult {
	e.mu.Lock()
	e.st.HungerLevel = MaxCareLevel
	e.st.HappyLevel = clampLevel(e.st.HappyLevel + 1)
	res := e.commitCareLocked(e.tune.FeedReward)
	e.mu.Unlock()

	e.record(telemetry.EventPetFed, telemetry.EventMetadata{"hearts_delta": res.HeartsDelta})
	e.afterAction(res)
	return res
}

// Clean refills cleanliness, removes every poop marker, cheers the pet up
// one step and awards hearts.
func (e *Engine) Clean() ActionResult {
	e.mu.Lock()
	e.st.CleanLevel = MaxCareLevel
	e.st.Poops = []Poop{}
	e.st.HappyLevel = clampLevel(e.st.HappyLevel + 1)
	res := e.commitCareLocked(e.tune.CleanReward)
	e.mu.Unlock()

	e.record(telemetry.EventPetCleaned, telemetry.EventMetadata{"hearts_delta": res.HeartsDelta})
	e.afterAction(res)
	return res
}

// Pet maxes happiness and awards hearts.
func (e *Engine) Pet() ActionResult {
	e.mu.Lock()
	e.st.HappyLevel = MaxCareLevel
	res := e.commitCareLocked(e.tune.PetReward)
	e.mu.Unlock()

	e.record(telemetry.EventPetPetted, telemetry.EventMetadata{"hearts_delta": res.HeartsDelta})
	e.afterAction(res)
	return res
}

// ScoopPoop removes one marker by id and awards hearts. Unknown ids are a
// no-op with a zero delta.
func (e *Engine) ScoopPoop(id int) ActionResult {
	e.mu.Lock()
	found := false
	kept := e.st.Poops[:0]
	for _, p := range e.st.Poops {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		res := ActionResult{Hearts: e.st.Hearts, Level: e.st.Level}
		e.mu.Unlock()
		return res
	}
	e.st.Poops = kept
	res := e.commitCareLocked(e.tune.ScoopReward)
	e.mu.Unlock()

	e.record(telemetry.EventPoopScooped, telemetry.EventMetadata{"poop_id": id, "hearts_delta": res.HeartsDelta})
	e.afterAction(res)
	return res
}

// EarnHearts applies a signed currency delta. Mini-games earn through it and
// spend through it with negative amounts; the balance never drops below 0.
// Only positive amounts count toward lifetime earnings and leveling.
func (e *Engine) EarnHearts(amount int) ActionResult {
	e.mu.Lock()
	res := e.commitCareLocked(amount)
	e.mu.Unlock()

	e.record(telemetry.EventHeartsEarned, telemetry.EventMetadata{"amount": amount})
	e.afterAction(res)
	return res
}

// ClaimDailyGift grants a random heart bonus once per cooldown window. The
// action re-checks eligibility so callers may invoke it speculatively.
func (e *Engine) ClaimDailyGift() GiftResult {
	e.mu.Lock()
	now := e.clock.Now()
	if e.st.LastGiftClaimed > 0 {
		elapsed := now.Sub(time.UnixMilli(e.st.LastGiftClaimed))
		if elapsed <= e.tune.GiftCooldown() {
			res := GiftResult{Amount: 0, Hearts: e.st.Hearts}
			e.mu.Unlock()
			return res
		}
	}

	amount := e.tune.GiftMin
	if spread := e.tune.GiftMax - e.tune.GiftMin; spread > 0 {
		amount += e.rng.Intn(spread + 1)
	}
	e.st.LastGiftClaimed = EpochMS(now)
	ar := e.commitCareLocked(amount)
	res := GiftResult{Amount: amount, Hearts: ar.Hearts}
	e.mu.Unlock()

	e.record(telemetry.EventGiftClaimed, telemetry.EventMetadata{"amount": amount})
	e.afterAction(ar)
	return res
}

// UnlockItem spends hearts to unlock a catalog item. Unknown items,
// insufficient balance, and repeat unlocks are all quiet no-ops.
func (e *Engine) UnlockItem(itemID string) UnlockResult {
	cost, known := e.catalog.ItemCost(itemID)
	e.mu.Lock()
	res := e.unlockLocked(itemID, cost, known, &e.st.UnlockedItems)
	e.mu.Unlock()

	if res.Unlocked {
		e.record(telemetry.EventItemUnlocked, telemetry.EventMetadata{"id": itemID, "cost": cost})
		e.notify()
	}
	return res
}

// UnlockBackground spends the flat background cost to unlock a background.
func (e *Engine) UnlockBackground(backgroundID string) UnlockResult {
	_, known := e.catalog.Background(backgroundID)
	cost := e.catalog.BackgroundCost()
	e.mu.Lock()
	res := e.unlockLocked(backgroundID, cost, known, &e.st.UnlockedBackgrounds)
	e.mu.Unlock()

	if res.Unlocked {
		e.record(telemetry.EventBackgroundUnlocked, telemetry.EventMetadata{"id": backgroundID, "cost": cost})
		e.notify()
	}
	return res
}

func (e *Engine) unlockLocked(id string, cost int, known bool, set *[]string) UnlockResult {
	res := UnlockResult{Cost: cost, Hearts: e.st.Hearts}
	if !known {
		return res
	}
	for _, u := range *set {
		if u == id {
			res.Already = true
			return res
		}
	}
	if e.st.Hearts < cost {
		return res
	}

	// Spending: balance only, lifetime earnings untouched.
	e.st.Hearts -= cost
	*set = append(*set, id)
	e.touchLocked()
	e.persistLocked()

	res.Unlocked = true
	res.Hearts = e.st.Hearts
	return res
}

// EquipItem places itemID in slot, or clears the slot when itemID is empty.
// The unlock status and slot fit are re-validated here, not trusted from the
// caller.
func (e *Engine) EquipItem(itemID string, slot Slot) bool {
	if !ValidSlot(slot) {
		return false
	}

	e.mu.Lock()
	if itemID != "" {
		it, known := e.catalog.Item(itemID)
		if !known || Slot(it.Slot) != slot || !e.st.HasUnlockedItem(itemID) {
			e.mu.Unlock()
			return false
		}
	}
	e.st.Equipment.Set(slot, itemID)
	e.touchLocked()
	e.persistLocked()
	e.mu.Unlock()

	e.record(telemetry.EventItemEquipped, telemetry.EventMetadata{"id": itemID, "slot": string(slot)})
	e.notify()
	return true
}

// SetBackground switches the scene; only unlocked backgrounds are accepted.
func (e *Engine) SetBackground(backgroundID string) bool {
	e.mu.Lock()
	if !e.st.HasUnlockedBackground(backgroundID) {
		e.mu.Unlock()
		return false
	}
	e.st.CurrentBackground = backgroundID
	e.touchLocked()
	e.persistLocked()
	e.mu.Unlock()

	e.record(telemetry.EventBackgroundSet, telemetry.EventMetadata{"id": backgroundID})
	e.notify()
	return true
}

// SaveOutfit replaces the placed decorations wholesale. The editor works on
// its own copy and commits here on explicit save. Placements without a uiId
// get one minted.
func (e *Engine) SaveOutfit(items []PlacedItem) {
	normalized := make([]PlacedItem, 0, len(items))
	for _, it := range items {
		if it.UIID == "" {
			it.UIID = uuid.NewString()
		}
		if it.Scale <= 0 {
			it.Scale = 1
		}
		normalized = append(normalized, it)
	}

	e.mu.Lock()
	e.st.PlacedItems = normalized
	e.touchLocked()
	e.persistLocked()
	e.mu.Unlock()

	e.record(telemetry.EventOutfitSaved, telemetry.EventMetadata{"count": len(normalized)})
	e.notify()
}

// DecayTick lowers care stats one step. In idle-only mode the tick is a
// no-op until the idle gate has elapsed since the last interaction, and a
// gated decay resets the idle timer so stats step down once per idle window
// rather than on every subsequent tick.
func (e *Engine) DecayTick() DecayResult {
	e.mu.Lock()
	now := e.clock.Now()

	if e.tune.DecayMode == config.DecayIdleOnly {
		idle := now.Sub(time.UnixMilli(e.st.LastInteraction))
		if idle <= e.tune.IdleGate() {
			res := DecayResult{
				HungerLevel: e.st.HungerLevel,
				CleanLevel:  e.st.CleanLevel,
				HappyLevel:  e.st.HappyLevel,
				PoopCount:   len(e.st.Poops),
			}
			e.mu.Unlock()
			return res
		}
		e.st.LastInteraction = EpochMS(now)
	}

	e.st.HungerLevel = clampLevel(e.st.HungerLevel - 1)
	e.st.CleanLevel = clampLevel(e.st.CleanLevel - 1)
	if e.st.HungerLevel == MinCareLevel || e.st.CleanLevel == MinCareLevel {
		e.st.HappyLevel = clampLevel(e.st.HappyLevel - 1)
	}

	spawned := false
	if e.st.CleanLevel < MaxCareLevel && len(e.st.Poops) < e.tune.PoopCap {
		e.st.Poops = append(e.st.Poops, Poop{
			ID: e.nextPoopID,
			X:  10 + e.rng.Float64()*80,
			Y:  10 + e.rng.Float64()*80,
		})
		e.nextPoopID++
		spawned = true
	}

	e.persistLocked()
	res := DecayResult{
		Applied:     true,
		HungerLevel: e.st.HungerLevel,
		CleanLevel:  e.st.CleanLevel,
		HappyLevel:  e.st.HappyLevel,
		PoopSpawned: spawned,
		PoopCount:   len(e.st.Poops),
	}
	e.mu.Unlock()

	e.record(telemetry.EventDecayTick, telemetry.EventMetadata{
		"hunger": res.HungerLevel,
		"clean":  res.CleanLevel,
		"happy":  res.HappyLevel,
	})
	e.notify()
	return res
}

// commitCareLocked applies a heart delta, recomputes the level, stamps the
// interaction time and persists. Caller holds the lock.
func (e *Engine) commitCareLocked(amount int) ActionResult {
	before := e.st.Level

	e.st.Hearts += amount
	if e.st.Hearts < 0 {
		e.st.Hearts = 0
	}
	if amount > 0 {
		e.st.TotalHeartsEarned += amount
		e.st.Level = LevelFor(e.st.TotalHeartsEarned)
	}

	e.touchLocked()
	e.persistLocked()

	return ActionResult{
		HeartsDelta: amount,
		Hearts:      e.st.Hearts,
		Level:       e.st.Level,
		LeveledUp:   e.st.Level > before,
	}
}

func (e *Engine) touchLocked() {
	e.st.LastInteraction = EpochMS(e.clock.Now())
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.st.Clone()); err != nil {
		e.logger.Warn("local save failed", "err", err)
	}
}

func (e *Engine) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if e.events == nil {
		return
	}
	if err := e.events.RecordEvent(t, md); err != nil {
		e.logger.Warn("telemetry record failed", "event", string(t), "err", err)
	}
}

func (e *Engine) afterAction(res ActionResult) {
	if res.LeveledUp {
		e.record(telemetry.EventLevelUp, telemetry.EventMetadata{"level": res.Level})
	}
	e.notify()
}

func (e *Engine) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}
