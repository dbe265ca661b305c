/*
Package build orchestrates a complete font-family build: component
decomposition on the shared glyph source, master-metric collection, and
then one compiled font per style with its MATH table interpolated,
encoded and inserted.

Compiling glyph outlines into an OpenType binary is the job of a
FontCompiler collaborator; this package only post-processes the
compiler's output. Styles are independent of each other and run
concurrently unless serial mode is requested; a failing style never
stops its siblings.
*/
package build

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mathfont.build'.
func tracer() tracing.Trace {
	return tracing.Select("mathfont.build")
}
