package build

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/core/font/otf"
	"github.com/npillmayer/mathfont/core/glyphs"
	"github.com/npillmayer/mathfont/engine/mathtable"
)

// FontCompiler produces an OpenType binary for one output style of a
// decomposed glyph source. Implementations must be safe for concurrent
// calls.
type FontCompiler interface {
	Compile(f *glyphs.Font, style *glyphs.Style) ([]byte, error)
}

// Options control a family build.
type Options struct {
	Compiler FontCompiler
	OutDir   string // target directory for the finished fonts
	Serial   bool   // process styles one after another
}

// Build runs the whole pipeline for every style of the font. Errors in
// the shared phase (decomposition, metric collection) abort the run;
// per-style errors are collected and reported together after all styles
// finished, so one broken style never blocks its siblings.
func Build(f *glyphs.Font, cfg *mathtable.Config, opts Options) error {
	if opts.Compiler == nil {
		return core.Error(core.EINVALID, "no font compiler configured")
	}
	if len(f.Styles) == 0 {
		return core.Error(core.EINVALID, "font %q declares no output styles", f.FamilyName)
	}
	if err := f.DecomposeComponents(); err != nil {
		return err
	}
	md, err := mathtable.CollectMasterData(f, cfg)
	if err != nil {
		return err
	}
	gids := f.GlyphIDs()
	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return core.WrapError(err, core.EINTERNAL,
				"cannot create output directory %q", opts.OutDir)
		}
	}
	tracer().Infof("building %d styles of %q", len(f.Styles), f.FamilyName)

	errs := make([]error, len(f.Styles))
	if opts.Serial {
		for i, style := range f.Styles {
			errs[i] = buildStyle(f, md, gids, style, opts)
		}
	} else {
		var wg sync.WaitGroup
		for i, style := range f.Styles {
			wg.Add(1)
			go func(i int, style *glyphs.Style) {
				defer wg.Done()
				errs[i] = buildStyle(f, md, gids, style, opts)
			}(i, style)
		}
		wg.Wait()
	}
	var failed []string
	for i, e := range errs {
		if e != nil {
			tracer().Errorf("style %q failed: %v", f.Styles[i].Name, e)
			failed = append(failed, f.Styles[i].Name)
		}
	}
	if len(failed) > 0 {
		return core.Error(core.EINTERNAL, "%d of %d styles failed (%s)",
			len(failed), len(f.Styles), strings.Join(failed, ", "))
	}
	return nil
}

// buildStyle produces one finished font file: interpolate the style's
// MATH model, compile the outlines, insert the encoded table and write
// the result.
func buildStyle(f *glyphs.Font, md *mathtable.MasterData, gids map[string]uint16,
	style *glyphs.Style, opts Options) error {
	//
	model, err := mathtable.Interpolate(md, style)
	if err != nil {
		return err
	}
	table, err := mathtable.Encode(model, gids)
	if err != nil {
		return err
	}
	binary, err := opts.Compiler.Compile(f, style)
	if err != nil {
		return core.WrapError(err, core.EINTERNAL,
			"font compiler failed for style %q", style.Name)
	}
	font, err := otf.Parse(binary)
	if err != nil {
		return err
	}
	font.SetTable(otf.T("MATH"), table)
	out, err := font.Bytes()
	if err != nil {
		return err
	}
	path := filepath.Join(opts.OutDir, FontFileName(f.FamilyName, style.Name))
	if err := os.WriteFile(path, out, 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write font file %q", path)
	}
	tracer().Infof("wrote %s (%d bytes)", path, len(out))
	return nil
}

// FontFileName derives the output file name for a style, with spaces
// stripped from the names.
func FontFileName(family, style string) string {
	clean := func(s string) string { return strings.ReplaceAll(s, " ", "") }
	return fmt.Sprintf("%s-%s.otf", clean(family), clean(style))
}
