// Package dirbuf holds the per-directory explore cache entry and its
// viewport scroll state.
package dirbuf

// PreviewCushion is the number of rows kept visible above/below the
// focused row when the viewport must scroll.
const PreviewCushion = 3

// ScrollState tracks the focused row of a DirectoryBuffer and how far the
// viewport has scrolled to keep it visible.
type ScrollState struct {
	CurrentFocus int
	LastFocus    *int
	SkippedRows  int
}

// CalcSkippedRows recomputes SkippedRows for a viewport of height h over t
// total rows, in either vimlike (cushioned) or paged mode, and records the
// current focus as LastFocus for the next call. Ported branch-for-branch
// from the canonical scroll algorithm; the focused row always ends up
// within [SkippedRows, SkippedRows+h).
func (s *ScrollState) CalcSkippedRows(h, t int, vimlike bool) {
	focus := s.CurrentFocus
	last := s.LastFocus
	firstVisible := s.SkippedRows

	var skipped int
	switch {
	case !vimlike:
		div := h
		if div < 1 {
			div = 1
		}
		skipped = h * (focus / div)

	case last == nil:
		skipped = 0

	case focus == 0:
		skipped = 0

	case focus == t-1:
		skipped = satSub(t, h)

	case focus > *last:
		// scrolling down
		switch {
		case focus <= firstVisible+h-PreviewCushion-1:
			skipped = firstVisible
		case t <= focus+PreviewCushion:
			skipped = firstVisible
		default:
			skipped = satSub(focus+PreviewCushion+1, h)
		}

	default:
		// scrolling up
		switch {
		case focus >= firstVisible+PreviewCushion:
			skipped = firstVisible
		case focus <= PreviewCushion:
			skipped = 0
		default:
			skipped = focus - PreviewCushion
		}
	}

	lastVal := focus
	s.LastFocus = &lastVal
	s.SkippedRows = skipped
}

func satSub(a, b int) int {
	if a < b {
		return 0
	}
	return a - b
}
