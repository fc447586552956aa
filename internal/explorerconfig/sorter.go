package explorerconfig

import (
	"strings"

	"github.com/fvbommel/sortorder"

	"github.com/sayanarijit/xplr-sub000/internal/node"
)

// projection selects which of a Node's three metadata views (itself, its
// canonical/realpath target, or its immediate symlink target) a sorter
// compares against.
type projection int

const (
	direct projection = iota
	canonical
	symlinkTarget
)

// SorterKind names one of the path/iPath/extension/type/mime/size
// comparators, crossed with the three node metadata projections.
type SorterKind string

const (
	ByPath     SorterKind = "ByPath"
	ByIPath    SorterKind = "ByIPath"
	ByExtension SorterKind = "ByExtension"
	ByIsDir    SorterKind = "ByIsDir"
	ByIsFile   SorterKind = "ByIsFile"
	ByIsSymlink SorterKind = "ByIsSymlink"
	ByMime     SorterKind = "ByMime"
	BySize     SorterKind = "BySize"

	ByCanonicalPath      SorterKind = "ByCanonicalPath"
	ByCanonicalIPath     SorterKind = "ByCanonicalIPath"
	ByCanonicalExtension SorterKind = "ByCanonicalExtension"
	ByCanonicalIsDir     SorterKind = "ByCanonicalIsDir"
	ByCanonicalIsFile    SorterKind = "ByCanonicalIsFile"
	ByCanonicalIsSymlink SorterKind = "ByCanonicalIsSymlink"
	ByCanonicalMime      SorterKind = "ByCanonicalMime"
	ByCanonicalSize      SorterKind = "ByCanonicalSize"

	BySymlinkPath      SorterKind = "BySymlinkPath"
	BySymlinkIPath     SorterKind = "BySymlinkIPath"
	BySymlinkExtension SorterKind = "BySymlinkExtension"
	BySymlinkIsDir     SorterKind = "BySymlinkIsDir"
	BySymlinkIsFile    SorterKind = "BySymlinkIsFile"
	BySymlinkIsSymlink SorterKind = "BySymlinkIsSymlink"
	BySymlinkMime      SorterKind = "BySymlinkMime"
	BySymlinkSize      SorterKind = "BySymlinkSize"
)

// NodeSorter pairs a SorterKind with a reverse flag.
type NodeSorter struct {
	Kind    SorterKind `yaml:"kind" json:"kind"`
	Reverse bool       `yaml:"reverse" json:"reverse"`
}

// key identifies a NodeSorter for ordered-set membership by Kind alone:
// re-adding the same Kind with a different Reverse replaces the existing
// entry instead of duplicating it.
func (s NodeSorter) key() SorterKind { return s.Kind }

// Compare returns <0, 0, >0 as a sorts before, ties, or sorts after b,
// honoring Reverse.
func (s NodeSorter) Compare(a, b node.Node) int {
	c := compareByKind(s.Kind, a, b)
	if s.Reverse {
		return -c
	}
	return c
}

func compareByKind(kind SorterKind, a, b node.Node) int {
	base, proj := splitKind(kind)

	av := projectedView(a, proj)
	bv := projectedView(b, proj)

	switch base {
	case ByPath:
		return compareNatural(pathOf(a, proj, false), pathOf(b, proj, false))
	case ByIPath:
		return compareNatural(pathOf(a, proj, true), pathOf(b, proj, true))
	case ByExtension:
		return compareNatural(extOf(a, proj), extOf(b, proj))
	case ByIsDir:
		return compareBool(av.isDir, bv.isDir)
	case ByIsFile:
		return compareBool(av.isFile, bv.isFile)
	case ByIsSymlink:
		return compareBool(a.IsSymlink, b.IsSymlink)
	case ByMime:
		return compareNatural(av.mime, bv.mime)
	case BySize:
		return compareInt64(av.size, bv.size)
	default:
		return 0
	}
}

// splitKind maps a projected SorterKind (e.g. ByCanonicalSize) back onto
// its base kind (BySize) and the projection it applies to.
func splitKind(kind SorterKind) (SorterKind, projection) {
	switch kind {
	case ByCanonicalPath:
		return ByPath, canonical
	case ByCanonicalIPath:
		return ByIPath, canonical
	case ByCanonicalExtension:
		return ByExtension, canonical
	case ByCanonicalIsDir:
		return ByIsDir, canonical
	case ByCanonicalIsFile:
		return ByIsFile, canonical
	case ByCanonicalIsSymlink:
		return ByIsSymlink, canonical
	case ByCanonicalMime:
		return ByMime, canonical
	case ByCanonicalSize:
		return BySize, canonical
	case BySymlinkPath:
		return ByPath, symlinkTarget
	case BySymlinkIPath:
		return ByIPath, symlinkTarget
	case BySymlinkExtension:
		return ByExtension, symlinkTarget
	case BySymlinkIsDir:
		return ByIsDir, symlinkTarget
	case BySymlinkIsFile:
		return ByIsFile, symlinkTarget
	case BySymlinkIsSymlink:
		return ByIsSymlink, symlinkTarget
	case BySymlinkMime:
		return ByMime, symlinkTarget
	case BySymlinkSize:
		return BySize, symlinkTarget
	default:
		return kind, direct
	}
}

type view struct {
	isDir  bool
	isFile bool
	mime   string
	size   int64
}

func projectedView(n node.Node, proj projection) view {
	switch proj {
	case canonical:
		if n.Canonical != nil {
			return view{n.Canonical.IsDir, n.Canonical.IsFile, n.Canonical.MimeEssence, n.Canonical.Size}
		}
	case symlinkTarget:
		if n.SymlinkTarget != nil {
			return view{n.SymlinkTarget.IsDir, n.SymlinkTarget.IsFile, n.SymlinkTarget.MimeEssence, n.SymlinkTarget.Size}
		}
	}
	return view{n.IsDir, n.IsFile, n.MimeEssence, n.Size}
}

func pathOf(n node.Node, proj projection, insensitive bool) string {
	p := n.AbsolutePath
	switch proj {
	case canonical:
		if n.Canonical != nil {
			p = n.Canonical.AbsolutePath
		}
	case symlinkTarget:
		if n.SymlinkTarget != nil {
			p = n.SymlinkTarget.AbsolutePath
		}
	}
	if insensitive {
		return strings.ToLower(p)
	}
	return p
}

func extOf(n node.Node, proj projection) string {
	switch proj {
	case canonical:
		if n.Canonical != nil {
			return n.Canonical.Extension
		}
	case symlinkTarget:
		if n.SymlinkTarget != nil {
			return n.SymlinkTarget.Extension
		}
	}
	return n.Extension
}

// compareNatural orders path-like strings the way a human expects file
// names with embedded numbers to sort ("file2" before "file10"), per the
// source's use of the natord crate.
func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case sortorder.NaturalLess(a, b):
		return -1
	default:
		return 1
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if a {
		return -1
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
