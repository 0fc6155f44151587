package forms

import "strings"

// Values is a flat string-keyed map of submitted form fields, the shape
// the page layer hands to every action.
type Values map[string]string

func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// FieldErrors maps an offending form field to its validation messages.
// A nil map means the input passed the schema.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	e[field] = append(e[field], message)
	return e
}
