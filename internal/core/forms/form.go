// Package forms holds descriptor-driven form state: the field descriptors a
// page renders, the current value and error of every field, and form-level
// errors that belong to no single field.
package forms

import (
	"strings"

	apperrors "github.com/lorrc/mentor-portal/internal/core/errors"
)

// Messages shared between the rule catalog and the struct validator.
const (
	PasswordRequiredMessage = "Please enter your password"
	PasswordPatternMessage  = "Password must be within 8-16, including all English case, numbers, and special characters."
)

// Rule is one validation step: a validator tag and the message shown when it fails.
type Rule struct {
	Tag     string `yaml:"tag"`
	Message string `yaml:"message"`
}

// FieldDescriptor describes one rendered input.
type FieldDescriptor struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Variant     string `yaml:"variant"`
	Type        string `yaml:"type"`
	Placeholder string `yaml:"placeholder"`
	Group       string `yaml:"group"`
	Rules       []Rule `yaml:"rules"`
}

// Required reports whether the first rule is a required check.
func (d FieldDescriptor) Required() bool {
	return len(d.Rules) > 0 && d.Rules[0].Tag == "required"
}

// Binding is a field descriptor together with its current value and error.
type Binding struct {
	FieldDescriptor
	Value string
	Error string
}

// Invalid reports whether the field currently carries an error.
func (b Binding) Invalid() bool {
	return b.Error != ""
}

// Form is the state of one form submission. It is not safe for concurrent use;
// every request builds its own.
type Form struct {
	fields     []FieldDescriptor
	values     map[string]string
	errors     map[string]string
	formErrors []string
}

// New creates an empty form for the given descriptors.
func New(fields []FieldDescriptor) *Form {
	return &Form{
		fields: fields,
		values: make(map[string]string, len(fields)),
		errors: make(map[string]string),
	}
}

// Fill copies the values of known fields from values. Email fields lose
// surrounding whitespace first, the way browsers sanitize them.
func (f *Form) Fill(values map[string]string) {
	for _, d := range f.fields {
		v, ok := values[d.Name]
		if !ok {
			continue
		}
		if d.Type == "email" {
			v = strings.TrimSpace(v)
		}
		f.values[d.Name] = v
	}
}

func (f *Form) Set(name, value string) {
	f.values[name] = value
}

func (f *Form) Value(name string) string {
	return f.values[name]
}

// SetError attaches message to name. name need not be a descriptor; widget
// fields such as the country selector carry errors the same way.
func (f *Form) SetError(name, message string) {
	f.errors[name] = message
}

func (f *Form) ClearError(name string) {
	delete(f.errors, name)
}

func (f *Form) Error(name string) string {
	return f.errors[name]
}

// AddFormError records an error that belongs to the whole form.
func (f *Form) AddFormError(message string) {
	f.formErrors = append(f.formErrors, message)
}

func (f *Form) FormErrors() []string {
	return f.formErrors
}

// Valid reports whether the form carries no field or form errors.
func (f *Form) Valid() bool {
	return len(f.errors) == 0 && len(f.formErrors) == 0
}

// Validate runs every descriptor's rules in order; the first failing rule of a
// field sets its error. Fields that pass have their error cleared.
func (f *Form) Validate(e *Engine) bool {
	ok := true
	for _, d := range f.fields {
		f.ClearError(d.Name)
		value := f.values[d.Name]
		for _, rule := range d.Rules {
			if !e.Check(value, rule) {
				f.SetError(d.Name, rule.Message)
				ok = false
				break
			}
		}
	}
	return ok
}

// Bindings returns every field in descriptor order.
func (f *Form) Bindings() []Binding {
	out := make([]Binding, 0, len(f.fields))
	for _, d := range f.fields {
		out = append(out, f.bind(d))
	}
	return out
}

// Group returns the fields of the named group in descriptor order. The empty
// name selects ungrouped fields.
func (f *Form) Group(name string) []Binding {
	var out []Binding
	for _, d := range f.fields {
		if d.Group == name {
			out = append(out, f.bind(d))
		}
	}
	return out
}

// ValidationErrors converts the field errors for JSON responses. Form-level
// errors are reported under the "form" key.
func (f *Form) ValidationErrors() *apperrors.ValidationErrors {
	verrs := apperrors.NewValidationErrors()
	for name, msg := range f.errors {
		verrs.Add(name, msg)
	}
	for _, msg := range f.formErrors {
		verrs.Add("form", msg)
	}
	return verrs
}

func (f *Form) bind(d FieldDescriptor) Binding {
	return Binding{
		FieldDescriptor: d,
		Value:           f.values[d.Name],
		Error:           f.errors[d.Name],
	}
}
