package store

import (
	"encoding/json"
	"fmt"
)

// migrations[v] upgrades a version-v state blob to version v+1. Each step
// works on the decoded JSON object so partially populated saves survive;
// fields a step does not touch pass through untouched and pick up defaults
// during normalization on load.
var migrations = map[int]func(map[string]any) map[string]any{
	1: migrateV1,
	2: migrateV2,
}

func migrate(version int, raw json.RawMessage) (json.RawMessage, error) {
	if version == SchemaVersion {
		return raw, nil
	}
	if version > SchemaVersion {
		return nil, fmt.Errorf("save version %d is newer than supported version %d", version, SchemaVersion)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for v := version; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from save version %d", v)
		}
		m = step(m)
	}
	return json.Marshal(m)
}

// migrateV1 upgrades the outfit-era format: a single currentOutfit worn on
// the body and a flat unlockedOutfits list, before hearts existed.
func migrateV1(m map[string]any) map[string]any {
	if outfit, ok := m["currentOutfit"].(string); ok && outfit != "" {
		m["equipment"] = map[string]any{"body": outfit}
	}
	delete(m, "currentOutfit")

	if outfits, ok := m["unlockedOutfits"]; ok {
		m["unlockedItems"] = outfits
		delete(m, "unlockedOutfits")
	}
	return m
}

// migrateV2 upgrades the pre-decoration format: the scene background lived
// in a single "background" field with no unlocked set.
func migrateV2(m map[string]any) map[string]any {
	if bg, ok := m["background"].(string); ok && bg != "" {
		m["currentBackground"] = bg
		m["unlockedBackgrounds"] = []any{bg}
	}
	delete(m, "background")
	return m
}
