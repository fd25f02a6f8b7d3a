package config

import (
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Env holds backend server settings, populated from the environment.
type Env struct {
	Addr      string `env:"RABBITCARE_ADDR" envDefault:":3001"`
	DBPath    string `env:"RABBITCARE_DB" envDefault:"data/rabbitcare.db"`
	DataDir   string `env:"RABBITCARE_DATA" envDefault:"data"`
	ServerURL string `env:"RABBITCARE_SERVER"`
}

// LoadEnv parses server settings from the environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// FromEnv applies tuning overrides from environment variables on top of the
// given tuning. Unset or malformed variables are ignored.
func FromEnv(t Tuning) Tuning {
	if v := getEnvInt("RABBITCARE_DECAY_INTERVAL_S"); v > 0 {
		t.DecayIntervalS = v
	}
	if mode := os.Getenv("RABBITCARE_DECAY_MODE"); mode == DecayAlways || mode == DecayIdleOnly {
		t.DecayMode = mode
	}
	if v := getEnvInt("RABBITCARE_IDLE_GATE_S"); v > 0 {
		t.IdleGateS = v
	}
	if v := getEnvInt("RABBITCARE_FEED_REWARD"); v > 0 {
		t.FeedReward = v
	}
	if v := getEnvInt("RABBITCARE_CLEAN_REWARD"); v > 0 {
		t.CleanReward = v
	}
	if v := getEnvInt("RABBITCARE_PET_REWARD"); v > 0 {
		t.PetReward = v
	}
	if v := getEnvInt("RABBITCARE_SCOOP_REWARD"); v > 0 {
		t.ScoopReward = v
	}
	if v := getEnvInt("RABBITCARE_GIFT_COOLDOWN_H"); v > 0 {
		t.GiftCooldownH = v
	}
	if v := getEnvInt("RABBITCARE_POOP_CAP"); v > 0 {
		t.PoopCap = v
	}
	if v := getEnvInt("RABBITCARE_SYNC_INTERVAL_S"); v > 0 {
		t.SyncIntervalS = v
	}
	return t
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
