package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jh3/codep/internal/entry"
	"github.com/jh3/codep/internal/logging"
)

const (
	storageFile = "User/globalStorage/storage.json"

	recentMenuID   = "submenuitem.MenubarRecentMenu"
	recentFileID   = "openRecentFile"
	recentFolderID = "openRecentFolder"
)

// ErrMenuNotFound is returned when storage.json lacks the recent menu.
var ErrMenuNotFound = errors.New("recent menu not found in storage.json")

type storageJSON struct {
	LastKnownMenubarData *struct {
		Menus *struct {
			File *struct {
				Items []json.RawMessage `json:"items"`
			} `json:"File"`
		} `json:"menus"`
	} `json:"lastKnownMenubarData"`
}

type fileMenuItem struct {
	ID      string `json:"id"`
	Submenu *struct {
		Items []json.RawMessage `json:"items"`
	} `json:"submenu"`
}

type recentItem struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
	URI     *struct {
		Scheme    string `json:"scheme"`
		Authority string `json:"authority"`
		Path      string `json:"path"`
	} `json:"uri"`
}

// MenuRecent lists the File > Open Recent menu the editor caches in its
// global storage. Entries keep the menu order and carry no timestamp.
type MenuRecent struct {
	path string
}

// NewMenuRecent creates a source reading storage.json below root.
func NewMenuRecent(root string) *MenuRecent {
	return &MenuRecent{path: filepath.Join(root, storageFile)}
}

// Entries reads and parses storage.json.
func (m *MenuRecent) Entries() (iter.Seq[entry.Raw], error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent menu: %w", err)
	}
	items, err := recentItems(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.path, err)
	}

	var entries []entry.Raw
	for i, raw := range items {
		var item recentItem
		if err := json.Unmarshal(raw, &item); err != nil {
			logging.L().Warn("skipping malformed recent menu item",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		e, ok := item.entry()
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return slices.Values(entries), nil
}

func recentItems(data []byte) ([]json.RawMessage, error) {
	var doc storageJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	bar := doc.LastKnownMenubarData
	if bar == nil || bar.Menus == nil || bar.Menus.File == nil {
		return nil, fmt.Errorf("%w: no File menu", ErrMenuNotFound)
	}
	for _, raw := range bar.Menus.File.Items {
		var item fileMenuItem
		if json.Unmarshal(raw, &item) != nil || item.ID != recentMenuID {
			continue
		}
		if item.Submenu == nil {
			return nil, fmt.Errorf("%w: recent menu has no submenu", ErrMenuNotFound)
		}
		return item.Submenu.Items, nil
	}
	return nil, ErrMenuNotFound
}

func (it recentItem) entry() (entry.Raw, bool) {
	var kind entry.Kind
	switch it.ID {
	case recentFileID:
		kind = entry.KindFile
	case recentFolderID:
		kind = entry.KindDir
	default:
		return entry.Raw{}, false
	}
	if !it.Enabled || it.URI == nil || it.URI.Path == "" {
		return entry.Raw{}, false
	}

	scheme := it.URI.Scheme
	if scheme == "" {
		scheme = "file"
	}
	path := strings.TrimSpace(it.URI.Path)
	uri := scheme + "://" + it.URI.Authority + path
	return entry.Raw{Kind: kind, URI: uri, Path: path}, true
}
