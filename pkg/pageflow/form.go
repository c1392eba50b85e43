package pageflow

import (
	"fmt"
	"strings"
)

// Field describes one form input.
type Field struct {
	Name     string
	Label    string
	Required bool
	// File marks the field as a local file path whose content becomes a
	// binary attachment rather than a plain value.
	File bool
	// Options constrains the value to a fixed set (status dropdowns).
	Options []string
}

// ValidationError lists the required fields a submit attempt left empty.
// It is raised before any request goes out.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required: %s", strings.Join(e.Missing, ", "))
}

// Form is the transient, store-independent field state of one page. It
// belongs to the page, not the store: a failed submit keeps the user's
// input, a mode switch resets it.
type Form struct {
	fields []Field
	values map[string]string
}

func NewForm(fields ...Field) *Form {
	return &Form{
		fields: fields,
		values: map[string]string{},
	}
}

func (f *Form) Fields() []Field { return f.fields }

func (f *Form) Set(name, value string) { f.values[name] = value }

func (f *Form) Value(name string) string { return f.values[name] }

// Seed loads current record values into the form, for edit mode.
func (f *Form) Seed(values map[string]string) {
	for name, value := range values {
		f.values[name] = value
	}
}

// Values returns the non-file values as a payload field map.
func (f *Form) Values() map[string]any {
	out := map[string]any{}
	for _, field := range f.fields {
		if field.File {
			continue
		}
		if value, ok := f.values[field.Name]; ok {
			out[field.Name] = value
		}
	}
	return out
}

// FilePaths returns the values of file fields that were filled in.
func (f *Form) FilePaths() map[string]string {
	out := map[string]string{}
	for _, field := range f.fields {
		if !field.File {
			continue
		}
		if value := f.values[field.Name]; value != "" {
			out[field.Name] = value
		}
	}
	return out
}

// Validate rejects the submit client-side when required fields are empty.
func (f *Form) Validate() error {
	var missing []string
	for _, field := range f.fields {
		if field.Required && strings.TrimSpace(f.values[field.Name]) == "" {
			missing = append(missing, field.Label)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

func (f *Form) Reset() {
	f.values = map[string]string{}
}
