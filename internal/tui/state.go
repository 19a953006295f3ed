package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/tui/layout"
)

// Mode is the current interaction mode of the App.
type Mode int

const (
	ModeNormal        Mode = iota
	ModeSearch             // typing a query
	ModeForm               // add/edit form open
	ModeConfirmRemove      // waiting for a removal decision
	ModeMove               // move picker open
	ModeNotice             // blocking notice, any key dismisses
	ModeHelp
)

// MessageType styles the status message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// dropZone is a non-row drop target under the pointer.
type dropZone int

const (
	dropNone dropZone = iota
	dropTrash
	dropForm
)

// Form field indexes, in focus order.
const (
	fieldTitle = iota
	fieldURL
	fieldColor
	fieldDescription
	fieldCount
)

// FormState holds the add/edit form inputs.
type FormState struct {
	TitleInput       textinput.Model
	URLInput         textinput.Model
	ColorInput       textinput.Model
	DescriptionInput textinput.Model
	Focus            int
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	newInput := func(placeholder string, limit int) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = limit
		in.Width = cfg.Input.StandardWidth
		return in
	}

	return FormState{
		TitleInput:       newInput("Title", cfg.Input.TitleCharLimit),
		URLInput:         newInput("https://... (empty for a folder)", cfg.Input.URLCharLimit),
		ColorInput:       newInput("#rrggbb or rgb(r, g, b)", cfg.Input.ColorCharLimit),
		DescriptionInput: newInput("Description", cfg.Input.DescriptionCharLimit),
	}
}

// inputs returns the inputs in focus order.
func (f *FormState) inputs() [fieldCount]*textinput.Model {
	return [fieldCount]*textinput.Model{&f.TitleInput, &f.URLInput, &f.ColorInput, &f.DescriptionInput}
}

// Load fills the inputs from fields and focuses the title.
func (f *FormState) Load(fields model.Fields) {
	f.TitleInput.SetValue(fields.Title)
	f.URLInput.SetValue(fields.URL)
	f.ColorInput.SetValue(fields.Color)
	f.DescriptionInput.SetValue(fields.Description)
	f.setFocus(fieldTitle)
}

// Fields returns the current input values.
func (f FormState) Fields() model.Fields {
	return model.Fields{
		Title:       f.TitleInput.Value(),
		URL:         f.URLInput.Value(),
		Color:       f.ColorInput.Value(),
		Description: f.DescriptionInput.Value(),
	}
}

// FocusNext moves focus to the next input, wrapping around.
func (f *FormState) FocusNext() {
	f.setFocus((f.Focus + 1) % fieldCount)
}

// FocusPrev moves focus to the previous input, wrapping around.
func (f *FormState) FocusPrev() {
	f.setFocus((f.Focus + fieldCount - 1) % fieldCount)
}

func (f *FormState) setFocus(i int) {
	f.Focus = i
	for j, in := range f.inputs() {
		if j == i {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// Focused returns the input that receives keystrokes.
func (f *FormState) Focused() *textinput.Model {
	return f.inputs()[f.Focus]
}

// Reset clears all inputs for a new form session.
func (f *FormState) Reset() {
	for _, in := range f.inputs() {
		in.Reset()
		in.Blur()
	}
	f.Focus = fieldTitle
}
