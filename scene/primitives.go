package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"lighting-sandbox/core"
)

// All generators emit counter-clockwise triangles seen from outside, so the
// meshes survive back-face culling.

// CreateCube generates a box centred on the origin with one quad per face.
func CreateCube(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}

	// n is the face normal; u x v == n.
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{p[0] * half[0], p[1] * half[1], p[2] * half[2]},
				Normal:   f.n,
				UV:       mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return NewMesh("Cube", vertices, indices)
}

// CreateSphere generates a UV sphere with segments slices around Y and
// segments/2 stacks from pole to pole.
func CreateSphere(radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	rings := segments / 2
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := float32(math.Sin(phi)), float32(math.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * math.Pi / float64(segments)
			sinTheta, cosTheta := float32(math.Sin(theta)), float32(math.Cos(theta))

			normal := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), 1 - float32(ring)/float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			below := current + uint32(segments+1)
			indices = append(indices, current, current+1, below)
			indices = append(indices, current+1, below+1, below)
		}
	}

	return NewMesh("Sphere", vertices, indices)
}

// CreateCylinder generates a capped cylinder centred on the origin along Y.
func CreateCylinder(height, radius float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	ring := func(i int) (float32, float32) {
		theta := float64(i) * 2 * math.Pi / float64(segments)
		return float32(math.Cos(theta)), float32(math.Sin(theta))
	}

	// Side: bottom/top vertex pairs.
	for i := 0; i <= segments; i++ {
		cosT, sinT := ring(i)
		normal := mgl32.Vec3{cosT, 0, sinT}
		u := float32(i) / float32(segments)
		vertices = append(vertices,
			core.Vertex{Position: mgl32.Vec3{cosT * radius, -halfHeight, sinT * radius}, Normal: normal, UV: mgl32.Vec2{u, 0}},
			core.Vertex{Position: mgl32.Vec3{cosT * radius, halfHeight, sinT * radius}, Normal: normal, UV: mgl32.Vec2{u, 1}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	addCap := func(y float32, normal mgl32.Vec3, top bool) {
		center := uint32(len(vertices))
		vertices = append(vertices, core.Vertex{
			Position: mgl32.Vec3{0, y, 0},
			Normal:   normal,
			UV:       mgl32.Vec2{0.5, 0.5},
		})
		first := uint32(len(vertices))
		for i := 0; i <= segments; i++ {
			cosT, sinT := ring(i)
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{cosT * radius, y, sinT * radius},
				Normal:   normal,
				UV:       mgl32.Vec2{cosT*0.5 + 0.5, sinT*0.5 + 0.5},
			})
		}
		for i := uint32(0); i < uint32(segments); i++ {
			if top {
				indices = append(indices, center, first+i+1, first+i)
			} else {
				indices = append(indices, center, first+i, first+i+1)
			}
		}
	}
	addCap(halfHeight, mgl32.Vec3{0, 1, 0}, true)
	addCap(-halfHeight, mgl32.Vec3{0, -1, 0}, false)

	return NewMesh("Cylinder", vertices, indices)
}

// CreatePlane generates a flat quad in the XZ plane facing +Y.
func CreatePlane(width, depth float32) *Mesh {
	w, d := width/2, depth/2
	up := mgl32.Vec3{0, 1, 0}
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-w, 0, -d}, Normal: up, UV: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{-w, 0, d}, Normal: up, UV: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{w, 0, d}, Normal: up, UV: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{w, 0, -d}, Normal: up, UV: mgl32.Vec2{1, 1}},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return NewMesh("Plane", vertices, indices)
}
