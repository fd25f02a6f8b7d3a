package remote

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const deviceIDFile = "device-id"

// DeviceID returns the stable identifier the remote save record is keyed by.
// It is generated on first call and persisted under dataDir so the same
// device keeps the same remote slot across restarts. An unwritable data
// directory degrades to a fresh id per run rather than failing the game.
func DeviceID(dataDir string) string {
	path := filepath.Join(dataDir, deviceIDFile)

	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dataDir, 0755); err == nil {
		_ = os.WriteFile(path, []byte(id+"\n"), 0644)
	}
	return id
}
