// Package node describes a filesystem entry as an immutable value,
// resolved once at enumeration time.
package node

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// ResolvedNode is the metadata of a concrete filesystem object: either the
// canonical (realpath) target of a Node, or the resolved symlink target.
type ResolvedNode struct {
	AbsolutePath string
	Extension    string
	IsDir        bool
	IsFile       bool
	IsReadonly   bool
	MimeEssence  string
	Size         int64
	HumanSize    string
	Permissions  Permissions
	UID          uint32
	GID          uint32
	CreatedAt    *time.Time
	ModifiedAt   *time.Time
}

// Node is the immutable description of one filesystem entry as seen during
// a single enumeration pass. Once constructed it is never mutated; a
// re-explore produces a brand new Node rather than patching this one.
type Node struct {
	ParentPath   string
	RelativePath string
	AbsolutePath string
	Extension    string

	IsDir      bool
	IsFile     bool
	IsSymlink  bool
	IsBroken   bool
	IsReadonly bool

	MimeEssence string
	Size        int64
	HumanSize   string

	Permissions Permissions
	UID         uint32
	GID         uint32

	CreatedAt  *time.Time
	ModifiedAt *time.Time

	// Canonical is the metadata of realpath(AbsolutePath); nil if it could
	// not be resolved (e.g. a broken symlink).
	Canonical *ResolvedNode
	// SymlinkTarget is the metadata of the link's fully resolved target
	// (every link in a chain followed) when IsSymlink is true and the link
	// is not broken; nil otherwise.
	SymlinkTarget *ResolvedNode
}

// New builds a Node for dirEntry found directly inside parent. Failures
// reading metadata never abort construction: they leave conservative
// defaults (size 0, no flags, default permissions) per the explorer's
// "never abort enumeration for one bad entry" contract.
func New(parent, name string) Node {
	abs := filepath.Join(parent, name)
	n := Node{
		ParentPath:   parent,
		RelativePath: name,
		AbsolutePath: abs,
		Extension:    extensionOf(name),
	}

	lstat, err := os.Lstat(abs)
	if err != nil {
		return n
	}

	n.IsSymlink = lstat.Mode()&os.ModeSymlink != 0

	if n.IsSymlink {
		target, terr := filepath.EvalSymlinks(abs)
		if terr != nil {
			n.IsBroken = true
			fillFromFileInfo(&n, lstat)
			return n
		}
		if resolved, rerr := resolve(target); rerr == nil {
			n.SymlinkTarget = &resolved
		} else {
			n.IsBroken = true
		}
	}

	stat, err := os.Stat(abs)
	if err != nil {
		// Broken symlink or a race where the entry disappeared: fall back
		// to lstat's own metadata, which at least describes the link
		// itself.
		n.IsBroken = n.IsSymlink
		fillFromFileInfo(&n, lstat)
		return n
	}
	fillFromFileInfo(&n, stat)

	if canonical, err := filepath.Abs(abs); err == nil {
		if real, err := filepath.EvalSymlinks(canonical); err == nil {
			if resolved, err := resolve(real); err == nil {
				n.Canonical = &resolved
			}
		}
	}

	return n
}

func resolve(absPath string) (ResolvedNode, error) {
	fi, err := os.Stat(absPath)
	if err != nil {
		return ResolvedNode{}, err
	}
	r := ResolvedNode{
		AbsolutePath: absPath,
		Extension:    extensionOf(absPath),
		IsDir:        fi.IsDir(),
		IsFile:       fi.Mode().IsRegular(),
		Size:         fi.Size(),
		HumanSize:    humanSize(fi.Size()),
		MimeEssence:  mimeEssence(absPath, fi.IsDir()),
	}
	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		r.Permissions = permissionsFromMode(uint32(sys.Mode))
		r.UID = sys.Uid
		r.GID = sys.Gid
		r.IsReadonly = !r.Permissions.UserWrite
	}
	mt := fi.ModTime()
	r.ModifiedAt = &mt
	return r, nil
}

func fillFromFileInfo(n *Node, fi os.FileInfo) {
	n.IsDir = fi.IsDir()
	n.IsFile = fi.Mode().IsRegular()
	n.Size = fi.Size()
	n.HumanSize = humanSize(fi.Size())
	n.MimeEssence = mimeEssence(n.AbsolutePath, n.IsDir)

	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		n.Permissions = permissionsFromMode(uint32(sys.Mode))
		n.UID = sys.Uid
		n.GID = sys.Gid
		n.IsReadonly = !n.Permissions.UserWrite
		ctime := time.Unix(sys.Ctim.Sec, sys.Ctim.Nsec)
		n.CreatedAt = &ctime
	}
	mt := fi.ModTime()
	n.ModifiedAt = &mt
}

func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}
	return ext[1:]
}

func mimeEssence(path string, isDir bool) string {
	if isDir {
		return "inode/directory"
	}
	typ := mime.TypeByExtension(filepath.Ext(path))
	if typ == "" {
		return "application/octet-stream"
	}
	// mime.TypeByExtension may append a charset parameter; the essence is
	// only the type/subtype.
	for i, c := range typ {
		if c == ';' {
			return typ[:i]
		}
	}
	return typ
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
