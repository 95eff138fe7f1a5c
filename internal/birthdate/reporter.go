package birthdate

// Outcome is the result of submitting a valid date.
type Outcome struct {
	// Accepted is true when the age meets the minimum.
	Accepted bool `json:"accepted"`
	// Message is the formatted date when accepted, the refusal otherwise.
	Message string `json:"message"`
	Age     int    `json:"age"`
	Session string `json:"session"`
}

// Reporter receives exactly one Outcome per accepted submit.
type Reporter interface {
	Report(Outcome)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Outcome)

// Report implements Reporter.
func (f ReporterFunc) Report(o Outcome) { f(o) }
