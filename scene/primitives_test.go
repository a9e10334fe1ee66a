package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"lighting-sandbox/core"
)

// checkWinding asserts every non-degenerate triangle is counter-clockwise
// when seen from the side its vertex normals point to.
func checkWinding(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%s: %d indices", m.Name, len(m.Indices))
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]

		face := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if face.Len() < 1e-6 {
			continue // collapsed at a pole
		}
		n := a.Normal.Add(b.Normal).Add(c.Normal)
		if face.Dot(n) <= 0 {
			t.Fatalf("%s: triangle %d wound clockwise", m.Name, i/3)
		}
	}
}

// checkOutward asserts normals of a closed origin-centred mesh face away
// from the centre.
func checkOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		if v.Position.Len() < 1e-6 {
			continue
		}
		if v.Position.Dot(v.Normal) <= 0 {
			t.Fatalf("%s: vertex %d normal %v points inward at %v", m.Name, i, v.Normal, v.Position)
		}
	}
}

func checkTangents(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		if l := v.Tangent.Len(); math.Abs(float64(l-1)) > 1e-3 {
			t.Fatalf("%s: vertex %d tangent length %v", m.Name, i, l)
		}
		if d := v.Tangent.Dot(v.Normal); math.Abs(float64(d)) > 1e-3 {
			t.Fatalf("%s: vertex %d tangent not perpendicular (dot %v)", m.Name, i, d)
		}
		if l := v.Bitangent.Len(); math.Abs(float64(l-1)) > 1e-3 {
			t.Fatalf("%s: vertex %d bitangent length %v", m.Name, i, l)
		}
		if d := v.Bitangent.Dot(v.Tangent); math.Abs(float64(d)) > 1e-3 {
			t.Fatalf("%s: vertex %d bitangent not perpendicular to tangent (dot %v)", m.Name, i, d)
		}
	}
}

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("%s: index %d = %d out of range", m.Name, i, idx)
		}
	}
}

func TestCreateCube(t *testing.T) {
	m := CreateCube(1, 1, 1)
	if len(m.Vertices) != 24 || m.TriangleCount() != 12 {
		t.Errorf("%d vertices, %d triangles", len(m.Vertices), m.TriangleCount())
	}
	for i, v := range m.Vertices {
		for axis := 0; axis < 3; axis++ {
			if math.Abs(float64(v.Position[axis])) != 0.5 {
				t.Fatalf("vertex %d at %v is not a corner", i, v.Position)
			}
		}
	}
	checkIndices(t, m)
	checkWinding(t, m)
	checkOutward(t, m)
	checkTangents(t, m)
}

func TestCreateSphere(t *testing.T) {
	m := CreateSphere(0.5, 64)
	if want := 33 * 65; len(m.Vertices) != want {
		t.Errorf("%d vertices, want %d", len(m.Vertices), want)
	}
	for i, v := range m.Vertices {
		if math.Abs(float64(v.Position.Len()-0.5)) > 1e-4 {
			t.Fatalf("vertex %d off the surface: %v", i, v.Position)
		}
	}
	checkIndices(t, m)
	checkWinding(t, m)
	checkOutward(t, m)
	checkTangents(t, m)
}

func TestCreateSphereMinimumSegments(t *testing.T) {
	m := CreateSphere(1, 0)
	if m.TriangleCount() == 0 {
		t.Fatal("no triangles")
	}
	checkIndices(t, m)
	checkWinding(t, m)
}

func TestCreateCylinder(t *testing.T) {
	m := CreateCylinder(1, 0.5, 64)
	for i, v := range m.Vertices {
		if v.Position[1] != 0.5 && v.Position[1] != -0.5 {
			t.Fatalf("vertex %d height %v", i, v.Position[1])
		}
	}
	checkIndices(t, m)
	checkWinding(t, m)
	checkTangents(t, m)

	// Cap normals point along Y; side normals point away from the axis.
	for i, v := range m.Vertices {
		if v.Normal[1] != 0 {
			if v.Normal[1]*v.Position[1] <= 0 {
				t.Fatalf("cap vertex %d normal %v at %v", i, v.Normal, v.Position)
			}
			continue
		}
		radial := mgl32.Vec3{v.Position[0], 0, v.Position[2]}
		if radial.Dot(v.Normal) <= 0 {
			t.Fatalf("side vertex %d normal %v points inward", i, v.Normal)
		}
	}
}

func TestCreatePlane(t *testing.T) {
	m := CreatePlane(2, 2)
	if len(m.Vertices) != 4 || m.TriangleCount() != 2 {
		t.Errorf("%d vertices, %d triangles", len(m.Vertices), m.TriangleCount())
	}
	for _, v := range m.Vertices {
		if v.Position[1] != 0 || v.Normal != (mgl32.Vec3{0, 1, 0}) {
			t.Fatalf("vertex %+v", v)
		}
	}
	checkWinding(t, m)
	checkTangents(t, m)
}

func TestComputeTangentsFollowsU(t *testing.T) {
	m := CreatePlane(2, 2)
	for i, v := range m.Vertices {
		if !vecNear(v.Tangent, mgl32.Vec3{1, 0, 0}) {
			t.Errorf("vertex %d tangent %v", i, v.Tangent)
		}
	}
}

func TestComputeTangentsWithoutUVArea(t *testing.T) {
	// Every vertex shares one UV, so no triangle has a usable basis.
	up := mgl32.Vec3{0, 1, 0}
	m := &Mesh{Name: "flat-uv", Vertices: []core.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, Normal: up},
		{Position: mgl32.Vec3{1, 0, 0}, Normal: up},
		{Position: mgl32.Vec3{0, 0, 1}, Normal: up},
		{Position: mgl32.Vec3{5, 5, 5}, Normal: mgl32.Vec3{1, 0, 0}}, // not in any triangle
	}}
	ComputeTangents(m)
	checkTangents(t, m)
	for i, v := range m.Vertices {
		if d := v.Bitangent.Dot(v.Normal); math.Abs(float64(d)) > 1e-3 {
			t.Errorf("vertex %d bitangent not perpendicular to normal (dot %v)", i, d)
		}
	}
}
