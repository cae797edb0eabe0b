package framework

import "strings"

// Errors collects errors from multiple runners into one.
type Errors []error

// Error implements error.
func (e Errors) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}
	msg := make([]string, len(e)+1)
	msg[0] = "multiple errors:"
	for n, err := range e {
		msg[n+1] = err.Error()
	}
	return strings.Join(msg, "\n")
}

// Append adds non-nil errors to the collection.
func (e Errors) Append(errs ...error) Errors {
	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}
	return e
}

// Aggregate returns the collection as an error, or nil when empty.
func (e Errors) Aggregate() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
