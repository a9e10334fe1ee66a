package renderer

import (
	"go.uber.org/zap"

	"lighting-sandbox/assets"
	"lighting-sandbox/internal/opengl"
)

// ProgramSet owns the four compiled programs of a frame.
type ProgramSet struct {
	Lit    *opengl.Program
	Unlit  *opengl.Program
	Shadow *opengl.Program
	Post   *opengl.Program
}

type programSource struct {
	name       string
	vert, frag string
	dst        **opengl.Program
}

// LoadPrograms compiles the embedded shaders. On failure, programs already
// built are deleted and the compile error is returned.
func LoadPrograms(log *zap.Logger) (*ProgramSet, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ps := &ProgramSet{}
	sources := []programSource{
		{"defaultLit", assets.LitVert, assets.LitFrag, &ps.Lit},
		{"unlit", assets.LitVert, assets.UnlitFrag, &ps.Unlit},
		{"shadows", assets.ShadowVert, assets.ShadowFrag, &ps.Shadow},
		{"postProcessing", assets.PostVert, assets.PostFrag, &ps.Post},
	}
	for _, src := range sources {
		p, err := opengl.NewProgram(log, src.name, src.vert, src.frag)
		if err != nil {
			ps.Delete()
			return nil, err
		}
		*src.dst = p
		log.Debug("Program linked", zap.String("program", src.name))
	}
	return ps, nil
}

// Programs exposes the set through the Shader interface.
func (ps *ProgramSet) Programs() Programs {
	return Programs{
		Lit:    ps.Lit,
		Unlit:  ps.Unlit,
		Shadow: ps.Shadow,
		Post:   ps.Post,
	}
}

func (ps *ProgramSet) Delete() {
	for _, p := range []*opengl.Program{ps.Lit, ps.Unlit, ps.Shadow, ps.Post} {
		if p != nil {
			p.Delete()
		}
	}
}
