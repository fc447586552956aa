// Package explorer enumerates a single directory in a background
// goroutine, applies the active filters and sorters, and reports the
// resulting DirectoryBuffer (or a LogError) back to the dispatcher over
// a task queue. It also recursively schedules an enumeration of every
// ancestor directory, one level per focused child, so the parent-column
// preview never has to block on a fresh readdir.
package explorer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sayanarijit/xplr-sub000/internal/dirbuf"
	"github.com/sayanarijit/xplr-sub000/internal/explorerconfig"
	"github.com/sayanarijit/xplr-sub000/internal/keys"
	"github.com/sayanarijit/xplr-sub000/internal/msgin"
	"github.com/sayanarijit/xplr-sub000/internal/node"
	"github.com/sayanarijit/xplr-sub000/internal/task"
)

// Sink accepts tasks produced by the explorer. *task.Queue satisfies it.
type Sink interface {
	Push(priority int, msg msgin.MsgIn, key *keys.Key)
}

// Explore enumerates parent in a new goroutine, filters and sorts the
// result with config, and pushes a SetDirectory InternalMsg (or a
// LogError ExternalMsg on failure) onto sink. It then recurses on
// parent's own parent directory so the ancestor chain gets refreshed
// too, focused on the child it leads down through.
func Explore(config explorerconfig.Config, parent string, focusedRelPath string, sink Sink) {
	go func() {
		dir, err := enumerate(config, parent, focusedRelPath)
		if err != nil {
			sink.Push(task.PriorityKeyAndInternal, msgin.FromExternal(msgin.ExternalMsg{
				Kind:    msgin.LogError,
				Message: err.Error(),
			}), nil)
			return
		}
		sink.Push(task.PriorityKeyAndInternal, msgin.FromInternal(msgin.InternalMsg{
			Kind:           msgin.SetDirectory,
			Directory:      dir,
			Parent:         parent,
			FocusedRelPath: focusedRelPath,
		}), nil)
	}()

	if grandParent := filepath.Dir(parent); grandParent != parent {
		Explore(config, grandParent, filepath.Base(parent), sink)
	}
}

// ExploreRecursiveAsync enumerates pwd and the full chain of its
// ancestors up to the filesystem root, each focused on the child that
// leads back down to pwd. It is the entry point used on startup and on
// ExplorePwdAsync/ExploreParentsAsync.
func ExploreRecursiveAsync(config explorerconfig.Config, pwd string, focusedRelPath string, sink Sink) {
	Explore(config, pwd, focusedRelPath, sink)
}

func enumerate(config explorerconfig.Config, parent, focusedRelPath string) (dirbuf.DirectoryBuffer, error) {
	entries, err := os.ReadDir(parent)
	if err != nil {
		return dirbuf.DirectoryBuffer{}, fmt.Errorf("reading directory %s: %w", parent, err)
	}

	nodes := make([]node.Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, node.New(parent, e.Name()))
	}

	nodes = config.Filter(nodes)
	nodes = config.Sort(nodes)

	return dirbuf.New(parent, nodes, focusedRelPath), nil
}
