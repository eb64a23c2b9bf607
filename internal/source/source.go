// Package source reads location entries out of the editor's persisted state.
//
// Every source reads a different layout below the config root:
//
//	User/globalStorage/storage.json       recent menu (MenuRecent)
//	User/workspaceStorage/*/workspace.json opened folders (WorkspaceStorage)
//	User/History/*/entries.json            edited files (History)
package source

import (
	"iter"

	"github.com/jh3/codep/internal/entry"
)

// Source produces entries from one on-disk representation.
//
// Entries returns an error only when the top-level file or directory cannot
// be read. Problems with individual entries are logged and the entry is left
// out. The sequence is finite and may be ranged over more than once.
type Source interface {
	Entries() (iter.Seq[entry.Raw], error)
}
