// Package assets embeds the GLSL sources so the binary runs from any
// working directory. Textures stay on disk under assets/textures.
package assets

import _ "embed"

// LitVert is shared by the lit and unlit programs.
//
//go:embed shaders/defaultLit.vert
var LitVert string

//go:embed shaders/defaultLit.frag
var LitFrag string

//go:embed shaders/unlit.frag
var UnlitFrag string

//go:embed shaders/shadows.vert
var ShadowVert string

//go:embed shaders/shadows.frag
var ShadowFrag string

// PostVert draws a fullscreen triangle from gl_VertexID.
//
//go:embed shaders/postProcessing.vert
var PostVert string

//go:embed shaders/postProcessing.frag
var PostFrag string
