package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"lighting-sandbox/core"
)

// degenerate is the squared length under which a direction is treated as
// missing.
const degenerate = 1e-8

// ComputeTangents derives each vertex's tangent frame from the mesh's UV
// layout, for normal mapping. The tangent follows +U and the bitangent +V;
// both end up unit length and perpendicular to the normal. Vertices that no
// usable triangle touches get an arbitrary frame around their normal.
func ComputeTangents(m *Mesh) {
	us := make([]mgl32.Vec3, len(m.Vertices))
	vs := make([]mgl32.Vec3, len(m.Vertices))

	m.eachTriangle(func(tri [3]uint32) {
		u, v, ok := uvAxes(m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]])
		if !ok {
			return
		}
		for _, i := range tri {
			us[i] = us[i].Add(u)
			vs[i] = vs[i].Add(v)
		}
	})

	for i := range m.Vertices {
		vert := &m.Vertices[i]
		vert.Tangent, vert.Bitangent = tangentFrame(vert.Normal, us[i], vs[i])
	}
}

// eachTriangle calls fn with the vertex indices of every triangle: index
// triples when the mesh is indexed, consecutive vertices otherwise. A
// trailing partial triangle is skipped.
func (m *Mesh) eachTriangle(fn func(tri [3]uint32)) {
	if len(m.Indices) == 0 {
		for i := uint32(0); int(i)+2 < len(m.Vertices); i += 3 {
			fn([3]uint32{i, i + 1, i + 2})
		}
		return
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		fn([3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]})
	}
}

// uvAxes returns the object-space directions in which U and V grow across a
// triangle. ok is false when the triangle's UVs have no area.
func uvAxes(a, b, c core.Vertex) (u, v mgl32.Vec3, ok bool) {
	ab, ac := b.Position.Sub(a.Position), c.Position.Sub(a.Position)
	st1, st2 := b.UV.Sub(a.UV), c.UV.Sub(a.UV)

	// [ab ac] = [u v] * [st1 st2]; invert the 2x2 UV matrix.
	det := st1[0]*st2[1] - st2[0]*st1[1]
	if det == 0 {
		return u, v, false
	}
	inv := 1 / det
	u = ab.Mul(st2[1] * inv).Sub(ac.Mul(st1[1] * inv))
	v = ac.Mul(st1[0] * inv).Sub(ab.Mul(st2[0] * inv))
	return u, v, true
}

// tangentFrame turns the summed U and V directions at a vertex into unit
// vectors perpendicular to n.
func tangentFrame(n, u, v mgl32.Vec3) (tangent, bitangent mgl32.Vec3) {
	tangent = u.Sub(n.Mul(n.Dot(u)))
	if tangent.LenSqr() < degenerate {
		tangent = perpendicular(n)
	}
	tangent = tangent.Normalize()

	bitangent = v.Sub(n.Mul(n.Dot(v))).Sub(tangent.Mul(tangent.Dot(v)))
	if bitangent.LenSqr() < degenerate {
		bitangent = n.Cross(tangent)
	}
	return tangent, bitangent.Normalize()
}

// perpendicular picks a direction at right angles to n using the world axis
// it is least aligned with.
func perpendicular(n mgl32.Vec3) mgl32.Vec3 {
	axis := mgl32.Vec3{1, 0, 0}
	if n[0]*n[0] > n[1]*n[1] {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return n.Cross(axis)
}
