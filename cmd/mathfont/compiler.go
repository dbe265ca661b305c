package main

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/glyphs"
	"github.com/npillmayer/mathfont/engine/build"
)

// precompiledFonts serves per-style OpenType binaries from a directory,
// produced by an external outline compiler ahead of time. File names
// follow the <Family>-<Style>.otf convention.
type precompiledFonts struct {
	dir string
}

func (pc *precompiledFonts) Compile(f *glyphs.Font, style *glyphs.Style) ([]byte, error) {
	path := filepath.Join(pc.dir, build.FontFileName(f.FamilyName, style.Name))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING,
			"no pre-compiled font for style %q", style.Name)
	}
	return data, nil
}
