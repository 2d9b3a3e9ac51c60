package scenario

import "math"

// defaultLayoutSpacing is the canvas distance between auto-placed
// neighbors.
const defaultLayoutSpacing = 150

// Layout strategy names accepted in a scenario definition.
const (
	LayoutGrid   = "grid"
	LayoutCircle = "circle"
	LayoutRow    = "row"
)

// LayoutStrategy assigns canvas positions to planned nodes in place.
type LayoutStrategy interface {
	Place(nodes []PlannedNode)
}

// GridLayout arranges nodes in a near-square grid, row by row.
type GridLayout struct {
	// Spacing between neighbors; defaults to defaultLayoutSpacing.
	Spacing int
}

// Place implements LayoutStrategy.
func (g *GridLayout) Place(nodes []PlannedNode) {
	spacing := g.Spacing
	if spacing <= 0 {
		spacing = defaultLayoutSpacing
	}
	cols := int(math.Ceil(math.Sqrt(float64(len(nodes)))))
	if cols < 1 {
		cols = 1
	}
	for i := range nodes {
		nodes[i].X = (i % cols) * spacing
		nodes[i].Y = (i / cols) * spacing
	}
}

// CircleLayout spreads nodes evenly on a circle around the origin.
type CircleLayout struct {
	// Radius of the circle; when zero it grows with the node count so
	// neighbors keep roughly one spacing between them.
	Radius int
}

// Place implements LayoutStrategy.
func (c *CircleLayout) Place(nodes []PlannedNode) {
	if len(nodes) == 0 {
		return
	}
	radius := float64(c.Radius)
	if radius <= 0 {
		radius = math.Max(defaultLayoutSpacing, float64(len(nodes))*defaultLayoutSpacing/(2*math.Pi))
	}
	step := 2 * math.Pi / float64(len(nodes))
	for i := range nodes {
		angle := step * float64(i)
		nodes[i].X = int(math.Round(radius * math.Cos(angle)))
		nodes[i].Y = int(math.Round(radius * math.Sin(angle)))
	}
}

// RowLayout places nodes left to right on a single row.
type RowLayout struct {
	Spacing int
}

// Place implements LayoutStrategy.
func (r *RowLayout) Place(nodes []PlannedNode) {
	spacing := r.Spacing
	if spacing <= 0 {
		spacing = defaultLayoutSpacing
	}
	for i := range nodes {
		nodes[i].X = i * spacing
		nodes[i].Y = 0
	}
}

// LayoutFor returns the strategy registered under name.
func LayoutFor(name string) (LayoutStrategy, bool) {
	switch name {
	case LayoutGrid:
		return &GridLayout{}, true
	case LayoutCircle:
		return &CircleLayout{}, true
	case LayoutRow:
		return &RowLayout{}, true
	}
	return nil, false
}

// autoLayout applies the named strategy when every node sits at the
// canvas origin. Hand-placed definitions are left untouched.
func autoLayout(nodes []PlannedNode, name string) {
	if name == "" || len(nodes) == 0 {
		return
	}
	for i := range nodes {
		if nodes[i].X != 0 || nodes[i].Y != 0 {
			return
		}
	}
	if strategy, ok := LayoutFor(name); ok {
		strategy.Place(nodes)
	}
}
