// Package pipe manages the per-session runtime directory used to publish
// application-state projections to spawned subprocesses and read
// commands back from them.
package pipe

import (
	"fmt"
	"os"
	"path/filepath"
)

// Pipe names the seven well-known files under a session's pipe/
// subdirectory.
type Pipe struct {
	MsgIn              string
	SelectionOut       string
	ResultOut          string
	DirectoryNodesOut  string
	GlobalHelpMenuOut  string
	LogsOut            string
	HistoryOut         string
}

// FromSessionPath builds the Pipe file-path set rooted at sessionPath
// (typically `<runtime_dir>/xplr/session/<pid>`).
func FromSessionPath(sessionPath string) Pipe {
	dir := filepath.Join(sessionPath, "pipe")
	return Pipe{
		MsgIn:             filepath.Join(dir, "msg_in"),
		SelectionOut:      filepath.Join(dir, "selection_out"),
		ResultOut:         filepath.Join(dir, "result_out"),
		DirectoryNodesOut: filepath.Join(dir, "directory_nodes_out"),
		GlobalHelpMenuOut: filepath.Join(dir, "global_help_menu_out"),
		LogsOut:           filepath.Join(dir, "logs_out"),
		HistoryOut:        filepath.Join(dir, "history_out"),
	}
}

// SessionDir returns the default session directory for pid, rooted at the
// OS's runtime directory (falling back to os.TempDir when none is set).
func SessionDir(pid int) string {
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		runtimeDir = os.TempDir()
	}
	return filepath.Join(runtimeDir, "xplr", "session", fmt.Sprintf("%d", pid))
}

// Create makes the session directory and its pipe/ subdirectory and touches
// every pipe file so readers/writers never race on file-not-found.
func Create(sessionPath string) (Pipe, error) {
	dir := filepath.Join(sessionPath, "pipe")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Pipe{}, fmt.Errorf("creating session pipe directory: %w", err)
	}
	p := FromSessionPath(sessionPath)
	for _, f := range p.files() {
		if err := touch(f); err != nil {
			return Pipe{}, fmt.Errorf("creating pipe file %s: %w", f, err)
		}
	}
	return p, nil
}

// Remove deletes the entire session directory. Called on both clean and
// fatal shutdown so no state is left behind.
func Remove(sessionPath string) error {
	return os.RemoveAll(sessionPath)
}

func (p Pipe) files() []string {
	return []string{
		p.MsgIn, p.SelectionOut, p.ResultOut, p.DirectoryNodesOut,
		p.GlobalHelpMenuOut, p.LogsOut, p.HistoryOut,
	}
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}
