/*
Package mathtable builds OpenType MATH tables for the output styles of a
multi-master font.

The pipeline has three stages. Collection gathers per-master raw metrics:
constants from the configuration document, per-glyph math metadata from
layer user data, and advances measured from the flattened outlines.
Interpolation blends the master-indexed values into one Model per style,
using the style's interpolation vector. Encoding serializes a Model into
the binary MATH structure — constants block, glyph-info block with
coverage-indexed sub-tables, and the variants block with glyph
constructions and assemblies — ready to be inserted into a compiled
font binary under the 'MATH' tag.

Masters and configuration are shared, never-mutated inputs; models are
built fresh per style, so styles can be processed concurrently.
*/
package mathtable

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mathfont.table'.
func tracer() tracing.Trace {
	return tracing.Select("mathfont.table")
}
