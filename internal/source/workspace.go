package source

import (
	"encoding/json"
	"path/filepath"

	"github.com/jh3/codep/internal/entry"
)

const (
	workspaceStorageDir = "User/workspaceStorage"
	workspaceSidecar    = "workspace.json"
)

type workspaceJSON struct {
	Folder    string `json:"folder"`
	Workspace string `json:"workspace"`
}

// NewWorkspaceStorage creates a source listing the folders and .code-workspace
// files the editor keeps per-workspace storage for.
func NewWorkspaceStorage(root string) Source {
	return newDirScanner(filepath.Join(root, workspaceStorageDir), workspaceSidecar, parseWorkspace)
}

func parseWorkspace(data []byte) (entry.Kind, string, bool, error) {
	var ws workspaceJSON
	if err := json.Unmarshal(data, &ws); err != nil {
		return 0, "", false, err
	}
	switch {
	case ws.Folder != "":
		return entry.KindDir, ws.Folder, true, nil
	case ws.Workspace != "":
		return entry.KindFile, ws.Workspace, true, nil
	}
	return 0, "", false, nil
}
