// Package page assembles the document a birth date field lives in and offers
// a headless way to fill in and submit it.
package page

import (
	"fmt"

	"github.com/twiced-technology-gmbh/agegate/internal/birthdate"
	"github.com/twiced-technology-gmbh/agegate/internal/date"
	"github.com/twiced-technology-gmbh/agegate/internal/dom"
)

const (
	// Target is the selector fields are mounted into.
	Target = "#" + targetID
	// Label is the text of the field's label.
	Label = "Birth date"

	targetID = "app"

	msgValueMissing    = "Please fill out this field."
	msgPatternMismatch = "Please match the requested format: %s"
)

// New returns a document with an empty mount target and the birth date
// template registered.
func New() *dom.Document {
	doc := dom.NewDocument()
	app := doc.CreateElement("div")
	app.SetID(targetID)
	doc.Body().AppendChild(app)
	birthdate.RegisterTemplate(doc, Label)
	return doc
}

// Result is the outcome of a headless submit.
type Result struct {
	// Outcome is set when the submit got through validation.
	Outcome *birthdate.Outcome
	// Part names the sub-field that blocked the submit.
	Part date.Part
	// Message explains why the submit was blocked.
	Message string
}

// Blocked reports whether validation stopped the submit.
func (r Result) Blocked() bool {
	return r.Outcome == nil
}

// Check mounts a fresh field, types input into it key by key, presses
// continue and returns what happened. rep, when non-nil, also receives the
// outcome.
func Check(cfg birthdate.Config, input string, rep birthdate.Reporter, opts ...birthdate.Option) (Result, error) {
	var out *birthdate.Outcome
	capture := birthdate.ReporterFunc(func(o birthdate.Outcome) {
		out = &o
		if rep != nil {
			rep.Report(o)
		}
	})

	field, err := birthdate.New(New(), cfg, append(opts, birthdate.WithReporter(capture))...)
	if err != nil {
		return Result{}, err
	}
	field.Mount(Target)
	if field.Input() == nil {
		return Result{}, fmt.Errorf("birth date field did not mount into %s", Target)
	}

	in := field.Input()
	in.Focus()
	for _, r := range input {
		in.InsertText(string(r))
	}
	field.UI().QuerySelector("." + birthdate.ClassContinue).Click()

	if out != nil {
		return Result{Outcome: out}, nil
	}

	res := Result{Part: field.InvalidPart(), Message: field.Message().Text()}
	if res.Message == "" {
		switch v := in.Validity(); {
		case v.ValueMissing:
			res.Message = msgValueMissing
		case v.PatternMismatch:
			res.Message = fmt.Sprintf(msgPatternMismatch, in.Title())
		}
	}
	return res, nil
}
