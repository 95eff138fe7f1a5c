package birthdate

import "github.com/twiced-technology-gmbh/agegate/internal/dom"

// TemplateID is the id of the template the field is instantiated from.
const TemplateID = "birth-date-template"

// Class names and data keys shared by the template and the controller.
const (
	ClassForm     = "birth-date"
	ClassField    = "birth-date-field"
	ClassInput    = "birth-date-input"
	ClassMessage  = "validation-message"
	ClassContinue = "continue"
	ClassLabel    = "birth-date-label"
	ClassValid    = "valid"
	ClassInvalid  = "invalid"

	// PlaceholderKey is the dataset key holding the format hint on the
	// input's parent element.
	PlaceholderKey = "placeholder"

	inputSelector   = "." + ClassInput
	messageSelector = "." + ClassMessage
)

// RegisterTemplate adds the birth date template to doc unless it is already
// present.
func RegisterTemplate(doc *dom.Document, label string) {
	if doc.QuerySelector("#"+TemplateID) != nil {
		return
	}
	doc.CreateTemplate(TemplateID, func(content *dom.Element) {
		form := doc.CreateElement(dom.TagForm)
		form.ClassList().Add(ClassForm)

		lbl := doc.CreateElement("label")
		lbl.ClassList().Add(ClassLabel)
		lbl.SetText(label)

		field := doc.CreateElement("span")
		field.ClassList().Add(ClassField)
		input := doc.CreateElement(dom.TagInput)
		input.ClassList().Add(ClassInput)
		input.SetRequired(true)
		field.AppendChild(input)

		message := doc.CreateElement("p")
		message.ClassList().Add(ClassMessage)

		button := doc.CreateElement(dom.TagButton)
		button.ClassList().Add(ClassContinue)
		button.SetType("submit")
		button.SetText("Continue")

		form.AppendChild(lbl)
		form.AppendChild(field)
		form.AppendChild(message)
		form.AppendChild(button)
		content.AppendChild(form)
	})
}
