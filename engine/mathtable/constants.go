package mathtable

// The MATH constants block is a fixed sequence of 56 fields. Encoding
// kind and field order are dictated by the OpenType specification; the
// catalog below is the single source of both.

// constantKind is the on-disk encoding of one MATH constant.
type constantKind uint8

const (
	kindInt16  constantKind = iota // raw int16
	kindUInt16                     // raw uint16
	kindValue                      // MathValueRecord: int16 value + device offset
)

type constantDef struct {
	name string
	kind constantKind
}

// constantCatalog lists the MATH constants in their declared on-disk
// order. See OpenType spec, MathConstants table.
var constantCatalog = []constantDef{
	{"ScriptPercentScaleDown", kindInt16},
	{"ScriptScriptPercentScaleDown", kindInt16},
	{"DelimitedSubFormulaMinHeight", kindUInt16},
	{"DisplayOperatorMinHeight", kindUInt16},
	{"MathLeading", kindValue},
	{"AxisHeight", kindValue},
	{"AccentBaseHeight", kindValue},
	{"FlattenedAccentBaseHeight", kindValue},
	{"SubscriptShiftDown", kindValue},
	{"SubscriptTopMax", kindValue},
	{"SubscriptBaselineDropMin", kindValue},
	{"SuperscriptShiftUp", kindValue},
	{"SuperscriptShiftUpCramped", kindValue},
	{"SuperscriptBottomMin", kindValue},
	{"SuperscriptBaselineDropMax", kindValue},
	{"SubSuperscriptGapMin", kindValue},
	{"SuperscriptBottomMaxWithSubscript", kindValue},
	{"SpaceAfterScript", kindValue},
	{"UpperLimitGapMin", kindValue},
	{"UpperLimitBaselineRiseMin", kindValue},
	{"LowerLimitGapMin", kindValue},
	{"LowerLimitBaselineDropMin", kindValue},
	{"StackTopShiftUp", kindValue},
	{"StackTopDisplayStyleShiftUp", kindValue},
	{"StackBottomShiftDown", kindValue},
	{"StackBottomDisplayStyleShiftDown", kindValue},
	{"StackGapMin", kindValue},
	{"StackDisplayStyleGapMin", kindValue},
	{"StretchStackTopShiftUp", kindValue},
	{"StretchStackBottomShiftDown", kindValue},
	{"StretchStackGapAboveMin", kindValue},
	{"StretchStackGapBelowMin", kindValue},
	{"FractionNumeratorShiftUp", kindValue},
	{"FractionNumeratorDisplayStyleShiftUp", kindValue},
	{"FractionDenominatorShiftDown", kindValue},
	{"FractionDenominatorDisplayStyleShiftDown", kindValue},
	{"FractionNumeratorGapMin", kindValue},
	{"FractionNumDisplayStyleGapMin", kindValue},
	{"FractionRuleThickness", kindValue},
	{"FractionDenominatorGapMin", kindValue},
	{"FractionDenomDisplayStyleGapMin", kindValue},
	{"SkewedFractionHorizontalGap", kindValue},
	{"SkewedFractionVerticalGap", kindValue},
	{"OverbarVerticalGap", kindValue},
	{"OverbarRuleThickness", kindValue},
	{"OverbarExtraAscender", kindValue},
	{"UnderbarVerticalGap", kindValue},
	{"UnderbarRuleThickness", kindValue},
	{"UnderbarExtraDescender", kindValue},
	{"RadicalVerticalGap", kindValue},
	{"RadicalDisplayStyleVerticalGap", kindValue},
	{"RadicalRuleThickness", kindValue},
	{"RadicalExtraAscender", kindValue},
	{"RadicalKernBeforeDegree", kindValue},
	{"RadicalKernAfterDegree", kindValue},
	{"RadicalDegreeBottomRaisePercent", kindInt16},
}

// constantDefFor returns the catalog entry for a constant name.
func constantDefFor(name string) (constantDef, bool) {
	for _, def := range constantCatalog {
		if def.name == name {
			return def, true
		}
	}
	return constantDef{}, false
}
