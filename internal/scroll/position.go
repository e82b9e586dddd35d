package scroll

import (
	"math"

	"github.com/san-kum/pagescroll/internal/logging"
)

// ResolveTargetPosition locates the target. Inline instances get the
// target's offset within its offset parent, page instances its
// document-relative position. An unknown selector yields NaN coordinates.
func (i *Instance) ResolveTargetPosition() Position {
	node := i.target.node
	if i.target.IsSelector() {
		if i.doc == nil {
			return unresolved
		}
		node = i.doc.ElementByID(i.target.id())
	}

	if isNil(node) {
		if i.logLevel >= LogInfo {
			logging.Info("scroll target %s not found", i.target)
		}
		return unresolved
	}

	if i.inline {
		return Position{Top: node.OffsetTop(), Left: node.OffsetLeft()}
	}
	return ElementPosition(node)
}

// WritePosition sets every view's offset to position and reports whether at
// least one view moved closer to it. Every view is written regardless of the
// others. A false result means all views are at their scroll limit.
func (i *Instance) WritePosition(position float64) bool {
	if i.logLevel >= LogVerbose {
		logging.Debug("scroll position: %.2f", position)
	}

	accepted := false
	for _, view := range i.views {
		if i.writeView(view, position) {
			accepted = true
		}
	}
	return accepted
}

func (i *Instance) writeView(view Surface, position float64) bool {
	if isNil(view) {
		return false
	}
	current, ok := i.ScrollValue(view)
	if !ok {
		return false
	}

	distance := math.Abs(current - position)
	// Some surfaces ignore near-identical writes; that is not a scroll limit.
	small := distance < i.minScrollDistance

	i.setScrollValue(view, position)

	if small {
		return true
	}
	after, ok := i.ScrollValue(view)
	if !ok {
		return false
	}
	return math.Abs(after-position) < distance
}
