/*
Package glyphs holds an in-memory model of a multi-master glyph source:
masters, output styles, glyphs with per-master layers, outline paths and
component references.

The model is deliberately independent of any source container format.
Loading a concrete container (a Glyphs package, UFO set, etc.) is the job
of client code; this package only requires outline geometry keyed by
glyph name × master id, plus per-layer key/value metadata.

Components may be "smart" (parametric): the referenced glyph declares an
axis with a [bottom, top] range, and the component picks a point on that
axis. The shape is then interpolated between two extreme layers tagged as
part 1 and part 2. Only a single smart axis is supported.

Before a font is handed to a compiler, all component references have to
be flattened into literal outlines; see DecomposeComponents.
*/
package glyphs

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mathfont.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("mathfont.glyphs")
}
