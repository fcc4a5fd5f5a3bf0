// Package validator validates request payloads before they reach a usecase.
package validator

// Validator validates structured input.
type Validator interface {
	Validate(data any) error
}
