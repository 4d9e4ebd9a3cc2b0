package tracker

// Direction is the sign of the most recent change of a byte.
type Direction uint8

const (
	Increase Direction = iota
	Decrease
)

func (d Direction) String() string {
	if d == Increase {
		return "increase"
	}
	return "decrease"
}

// Magnitude distinguishes single-step changes from larger jumps.
type Magnitude uint8

const (
	Unit Magnitude = iota
	Multi
)

func (m Magnitude) String() string {
	if m == Unit {
		return "unit"
	}
	return "multi"
}

// Class is the colour family a renderer should use for a byte. The core only
// picks the class; concrete colours belong to the renderer.
type Class uint8

const (
	MutedZero Class = iota
	Default
	BrightUnitIncrease
	BrightMultiIncrease
	BrightUnitDecrease
	BrightMultiDecrease
	DimUnitIncrease
	DimMultiIncrease
	DimUnitDecrease
	DimMultiDecrease

	// NumClasses is the number of distinct classes, for lookup tables.
	NumClasses int = iota
)

var classNames = [NumClasses]string{
	"muted_zero",
	"default",
	"bright_unit_increase",
	"bright_multi_increase",
	"bright_unit_decrease",
	"bright_multi_decrease",
	"dim_unit_increase",
	"dim_multi_increase",
	"dim_unit_decrease",
	"dim_multi_decrease",
}

func (c Class) String() string {
	if int(c) < NumClasses {
		return classNames[c]
	}
	return "unknown"
}

// ClassNames lists every class name in Class order.
func ClassNames() []string {
	out := make([]string, NumClasses)
	copy(out, classNames[:])
	return out
}

// Bright returns the class for a cell that is still fading.
func Bright(d Direction, m Magnitude) Class {
	return BrightUnitIncrease + familyOffset(d, m)
}

// Dim returns the class for a touched cell whose fade has run out.
func Dim(d Direction, m Magnitude) Class {
	return DimUnitIncrease + familyOffset(d, m)
}

func familyOffset(d Direction, m Magnitude) Class {
	return Class(d)*2 + Class(m)
}

// IsBright reports whether c is one of the bright classes.
func (c Class) IsBright() bool {
	return c >= BrightUnitIncrease && c <= BrightMultiDecrease
}

// IsDim reports whether c is one of the dim classes.
func (c Class) IsDim() bool {
	return c >= DimUnitIncrease && c <= DimMultiDecrease
}
