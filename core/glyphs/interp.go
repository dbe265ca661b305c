package glyphs

import (
	"math"

	"github.com/npillmayer/mathfont/core"
)

// Rescale maps x running over [bottom, top] onto [0, 1].
func Rescale(x, bottom, top float64) float64 {
	return (x - bottom) / (top - bottom)
}

// interpolateNode blends two nodes at parameter t. Positions are rounded
// to whole design units; type and smoothness are taken from n0.
func interpolateNode(n0, n1 Node, t float64) Node {
	return Node{
		X:      math.Round(n0.X*(1-t) + n1.X*t),
		Y:      math.Round(n0.Y*(1-t) + n1.Y*t),
		Type:   n0.Type,
		Smooth: n0.Smooth,
	}
}

// interpolatePath blends two paths node by node. The paths must
// correspond 1:1; a node-count mismatch indicates corrupt part layers
// and is an error, never a silent truncation.
func interpolatePath(p0, p1 *Path, t float64) (*Path, error) {
	if len(p0.Nodes) != len(p1.Nodes) {
		return nil, core.Error(core.EINVALID,
			"interpolation extremes have %d vs %d nodes", len(p0.Nodes), len(p1.Nodes))
	}
	p := &Path{Closed: p0.Closed, Nodes: make([]Node, len(p0.Nodes))}
	for i := range p0.Nodes {
		p.Nodes[i] = interpolateNode(p0.Nodes[i], p1.Nodes[i], t)
	}
	return p, nil
}
