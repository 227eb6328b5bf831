// Package geomconv converts an absolute-geometry layout tree (parsed
// by internal/tmuxfmt from a multiplexer window_layout string) into
// the right-associative, percentage-sized split tree used by
// internal/config.
package geomconv

import (
	"fmt"
	"math"

	"tmuxlayout/internal/config"
	"tmuxlayout/internal/tmuxfmt"
)

// separatorWidth is the single fixed adjustment (in cells) the
// conversion subtracts for the divider between two adjacent panes.
// Correct only for single-line borders; wider separators miscompute
// the resulting percentages.
const separatorWidth = 1.0

// Convert turns a geometry tree into the equivalent split tree. An H
// node folds its children right-to-left over width; a V node folds
// over height. A leaf pane converts to a default (empty) pane, since
// the geometry tree carries no pane content — that is overlaid
// afterwards by the import reassembler.
func Convert(node *tmuxfmt.GeomNode) config.Split {
	if node == nil || len(node.Children) == 0 {
		return config.DefaultSplit()
	}

	switch node.SplitDir {
	case '{':
		return convertAxis(node.Children, func(n *tmuxfmt.GeomNode) float64 { return float64(n.Geom.Size.Width) },
			func(left, right config.Side) config.Split { return &config.HSplit{Left: left, Right: right} })
	case '[':
		return convertAxis(node.Children, func(n *tmuxfmt.GeomNode) float64 { return float64(n.Geom.Size.Height) },
			func(top, bottom config.Side) config.Split { return &config.VSplit{Top: top, Bottom: bottom} })
	default:
		return config.DefaultSplit()
	}
}

func convertAxis(children []*tmuxfmt.GeomNode, extent func(*tmuxfmt.GeomNode) float64,
	combine func(a, b config.Side) config.Split) config.Split {

	last := children[len(children)-1]
	accExtent := extent(last)
	accSplit := Convert(last)

	for i := len(children) - 2; i >= 0; i-- {
		left := children[i]
		leftExtent := extent(left)
		newExtent := accExtent + leftExtent - separatorWidth
		// Deliberately leftExtent, not accExtent, in the numerator: this
		// matches the worked percentage in the normative split-size
		// example (51%) but disagrees with the accumulator-extent formula
		// written elsewhere for the same conversion and with the
		// right-hand side's actual on-screen share for asymmetric splits.
		// The two formulas diverge arbitrarily outside that example; see
		// DESIGN.md's open-questions table for the resolution.
		pct := math.Round(leftExtent * 100 / newExtent)

		sizeStr := fmt.Sprintf("%.0f%%", pct)
		accSplit = combine(
			config.Side{Split: Convert(left)},
			config.Side{Size: &sizeStr, Split: accSplit},
		)
		accExtent = newExtent
	}

	return accSplit
}
