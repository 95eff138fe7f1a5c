package date

// Part identifies one sub-field of a date.
type Part int

const (
	// PartNone means no sub-field.
	PartNone Part = iota
	// PartYear is the year sub-field.
	PartYear
	// PartMonth is the month sub-field.
	PartMonth
	// PartDay is the day sub-field.
	PartDay
)

// positions maps a token position (0 year, 1 month, 2 day) to its Part.
var positions = [...]Part{PartYear, PartMonth, PartDay}

// PartAt returns the Part at the given position, or PartNone when the
// position is out of range.
func PartAt(index int) Part {
	if index < 0 || index >= len(positions) {
		return PartNone
	}
	return positions[index]
}

// String returns the lower-case name of the part ("year", "month", "day").
func (p Part) String() string {
	switch p {
	case PartYear:
		return "year"
	case PartMonth:
		return "month"
	case PartDay:
		return "day"
	default:
		return ""
	}
}
