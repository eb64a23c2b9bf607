package source

import (
	"encoding/json"
	"path/filepath"

	"github.com/jh3/codep/internal/entry"
)

const (
	historyDir     = "User/History"
	historySidecar = "entries.json"
)

type historyJSON struct {
	Resource string `json:"resource"`
}

// NewHistory creates a source listing the files the editor keeps local
// history for.
func NewHistory(root string) Source {
	return newDirScanner(filepath.Join(root, historyDir), historySidecar, parseHistory)
}

func parseHistory(data []byte) (entry.Kind, string, bool, error) {
	var h historyJSON
	if err := json.Unmarshal(data, &h); err != nil {
		return 0, "", false, err
	}
	if h.Resource == "" {
		return 0, "", false, nil
	}
	return entry.KindFile, h.Resource, true, nil
}
