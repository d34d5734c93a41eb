package scene

import (
	"github.com/Faultbox/boxify/internal/box"
)

// WireframeVertexCount is the number of vertices in a box wireframe (12 edges × 2).
const WireframeVertexCount = box.EdgeCount * 2

// WireframeVertices returns line-list vertices for the box edges in world
// space, in edge handle order. Format: [x, y, z] per vertex.
// A hidden box yields nil.
func WireframeVertices(b *box.Box) []float32 {
	if b.Hidden() {
		return nil
	}

	out := make([]float32, 0, WireframeVertexCount*3)
	for id := box.EdgeID(0); id < box.EdgeCount; id++ {
		e := b.Edge(id)
		from := b.LocalToWorld(b.Vertex(e.From).Position)
		to := b.LocalToWorld(b.Vertex(e.To).Position)
		out = append(out,
			from.X, from.Y, from.Z,
			to.X, to.Y, to.Z,
		)
	}
	return out
}
