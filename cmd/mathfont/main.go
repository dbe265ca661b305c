/*
mathfont builds the OpenType MATH tables for a multi-master math font.

It reads a JSON dump of the glyph source and a TOML math configuration,
then produces one finished font per output style: pre-compiled per-style
binaries get their interpolated MATH table inserted and are written to
the output directory.
*/
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/npillmayer/mathfont/core"
	"github.com/npillmayer/mathfont/engine/build"
	"github.com/npillmayer/mathfont/engine/mathtable"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

var args struct {
	Source   string `arg:"" help:"Path to the glyph source dump (JSON)" type:"path"`
	Config   string `short:"c" required:"" help:"Path to the math configuration (TOML)" type:"path"`
	FontsDir string `short:"f" required:"" help:"Directory with pre-compiled per-style fonts" type:"path"`
	OutDir   string `short:"o" default:"." help:"Output directory" type:"path"`
	Serial   bool   `help:"Process styles one after another"`
	Trace    string `enum:"Debug,Info,Error" default:"Info" help:"Trace level"`
}

// tracer traces with key 'mathfont.build'
func tracer() tracing.Trace {
	return tracing.Select("mathfont.build")
}

func main() {
	kong.Parse(&args)
	setupTracing(args.Trace)

	f, err := loadSource(args.Source)
	if err != nil {
		fail(err)
	}
	var cfg mathtable.Config
	if _, err := toml.DecodeFile(args.Config, &cfg); err != nil {
		fail(core.WrapError(err, core.EINVALID,
			"cannot read math configuration %q", args.Config))
	}
	opts := build.Options{
		Compiler: &precompiledFonts{dir: args.FontsDir},
		OutDir:   args.OutDir,
		Serial:   args.Serial,
	}
	if err := build.Build(f, &cfg, opts); err != nil {
		fail(err)
	}
	tracer().Infof("done, %d styles written to %s", len(f.Styles), args.OutDir)
}

// set up logging
func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.mathfont.glyphs": level,
		"trace.mathfont.otf":    level,
		"trace.mathfont.table":  level,
		"trace.mathfont.build":  level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func fail(err error) {
	tracer().Errorf(err.Error())
	core.UserError(err)
	os.Exit(2)
}
