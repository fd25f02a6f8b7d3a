package config

import "time"

// Tuning holds gameplay balance configuration. Interval fields are plain
// seconds/hours so they round-trip through YAML and env vars; use the
// accessor methods for durations.
type Tuning struct {
	// Decay
	DecayIntervalS int    `yaml:"decay_interval_s" json:"decay_interval_s"`
	DecayMode      string `yaml:"decay_mode" json:"decay_mode"`
	IdleGateS      int    `yaml:"idle_gate_s" json:"idle_gate_s"`

	// Care rewards
	FeedReward  int `yaml:"feed_reward" json:"feed_reward"`
	CleanReward int `yaml:"clean_reward" json:"clean_reward"`
	PetReward   int `yaml:"pet_reward" json:"pet_reward"`
	ScoopReward int `yaml:"scoop_reward" json:"scoop_reward"`

	// Daily gift
	GiftCooldownH int `yaml:"gift_cooldown_h" json:"gift_cooldown_h"`
	GiftMin       int `yaml:"gift_min" json:"gift_min"`
	GiftMax       int `yaml:"gift_max" json:"gift_max"`

	// Nuisance markers
	PoopCap int `yaml:"poop_cap" json:"poop_cap"`

	// Sync
	SyncIntervalS  int `yaml:"sync_interval_s" json:"sync_interval_s"`
	RemoteTimeoutS int `yaml:"remote_timeout_s" json:"remote_timeout_s"`
}

// Decay gating policies. DecayAlways ticks unconditionally; DecayIdleOnly
// only lowers stats after the idle gate has elapsed with no interaction.
const (
	DecayAlways   = "always"
	DecayIdleOnly = "idle-only"
)

// Default returns the default tuning.
func Default() Tuning {
	return Tuning{
		DecayIntervalS: 60,
		DecayMode:      DecayAlways,
		IdleGateS:      120,
		FeedReward:     5,
		CleanReward:    5,
		PetReward:      3,
		ScoopReward:    2,
		GiftCooldownH:  24,
		GiftMin:        50,
		GiftMax:        100,
		PoopCap:        10,
		SyncIntervalS:  30,
		RemoteTimeoutS: 8,
	}
}

func (t Tuning) DecayInterval() time.Duration {
	return time.Duration(t.DecayIntervalS) * time.Second
}

func (t Tuning) IdleGate() time.Duration {
	return time.Duration(t.IdleGateS) * time.Second
}

func (t Tuning) GiftCooldown() time.Duration {
	return time.Duration(t.GiftCooldownH) * time.Hour
}

func (t Tuning) SyncInterval() time.Duration {
	return time.Duration(t.SyncIntervalS) * time.Second
}

func (t Tuning) RemoteTimeout() time.Duration {
	return time.Duration(t.RemoteTimeoutS) * time.Second
}

// ApplyDefaults fills zero-valued fields so a sparse config file still yields
// a playable game.
func (t *Tuning) ApplyDefaults() {
	d := Default()
	if t.DecayIntervalS <= 0 {
		t.DecayIntervalS = d.DecayIntervalS
	}
	if t.DecayMode != DecayAlways && t.DecayMode != DecayIdleOnly {
		t.DecayMode = d.DecayMode
	}
	if t.IdleGateS <= 0 {
		t.IdleGateS = d.IdleGateS
	}
	if t.FeedReward <= 0 {
		t.FeedReward = d.FeedReward
	}
	if t.CleanReward <= 0 {
		t.CleanReward = d.CleanReward
	}
	if t.PetReward <= 0 {
		t.PetReward = d.PetReward
	}
	if t.ScoopReward <= 0 {
		t.ScoopReward = d.ScoopReward
	}
	if t.GiftCooldownH <= 0 {
		t.GiftCooldownH = d.GiftCooldownH
	}
	if t.GiftMin <= 0 {
		t.GiftMin = d.GiftMin
	}
	if t.GiftMax <= 0 {
		t.GiftMax = d.GiftMax
	}
	if t.GiftMax < t.GiftMin {
		t.GiftMax = t.GiftMin
	}
	if t.PoopCap <= 0 {
		t.PoopCap = d.PoopCap
	}
	if t.SyncIntervalS <= 0 {
		t.SyncIntervalS = d.SyncIntervalS
	}
	if t.RemoteTimeoutS <= 0 {
		t.RemoteTimeoutS = d.RemoteTimeoutS
	}
}
