// Package registration models the patient registration form: its values,
// field validation, error display state, submitting state and the country
// code picker.
package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
)

type Field string

const (
	FieldFullName         Field = "fullName"
	FieldEmail            Field = "email"
	FieldPhoneCountryCode Field = "phoneCountryCode"
	FieldPhoneNumber      Field = "phoneNumber"
	FieldDocumentPhoto    Field = "documentPhoto"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldFullName, FieldEmail, FieldPhoneCountryCode, FieldPhoneNumber, FieldDocumentPhoto}

// Errors maps a field to its message. Valid fields are absent.
type Errors map[Field]string

func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// ErrSubmitting is returned for edits or submits while a submission is in flight.
var ErrSubmitting = errors.New("registration: submission in progress")

// SubmitFunc receives the values of a form that passed validation.
type SubmitFunc func(ctx context.Context, req model.CreatePatientRequest) error

type Form struct {
	values     model.CreatePatientRequest
	errors     Errors
	showErrors bool
	submitting bool
	picker     *CountryPicker
}

func NewForm() *Form {
	return &Form{
		values: model.CreatePatientRequest{PhoneCountryCode: constant.DefaultCountryCode},
		errors: Errors{},
		picker: NewCountryPicker(Countries),
	}
}

// SetText updates a text field. Once a submit has been attempted the field is
// re-validated immediately so its message tracks the edit.
func (f *Form) SetText(field Field, value string) error {
	if f.submitting {
		return ErrSubmitting
	}
	switch field {
	case FieldFullName:
		f.values.FullName = value
	case FieldEmail:
		f.values.Email = value
	case FieldPhoneCountryCode:
		f.values.PhoneCountryCode = value
	case FieldPhoneNumber:
		f.values.PhoneNumber = value
	default:
		return fmt.Errorf("registration: %q is not a text field", field)
	}
	f.revalidate(field)
	return nil
}

// SetPhoto replaces the document photo; nil removes it.
func (f *Form) SetPhoto(photo *model.DocumentPhoto) error {
	if f.submitting {
		return ErrSubmitting
	}
	f.values.DocumentPhoto = photo
	f.revalidate(FieldDocumentPhoto)
	return nil
}

// SelectCountry applies a picker choice to the country code field and closes the picker.
func (f *Form) SelectCountry(code string) error {
	if f.submitting {
		return ErrSubmitting
	}
	f.picker.Select(code)
	return f.SetText(FieldPhoneCountryCode, code)
}

func (f *Form) Picker() *CountryPicker {
	return f.picker
}

// Validate runs every field validator without touching display state.
func (f *Form) Validate() Errors {
	errs := Errors{}
	for _, field := range Fields {
		if msg := f.validateField(field); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}

// Submit validates all fields and shows every failure at once. When nothing
// fails, handler is called exactly once with the current values and the form
// stays in submitting state until Complete is called. The handler error, if
// any, is returned as is.
func (f *Form) Submit(ctx context.Context, handler SubmitFunc) (bool, error) {
	if f.submitting {
		return false, ErrSubmitting
	}

	f.errors = f.Validate()
	f.showErrors = true
	if len(f.errors) > 0 {
		return false, nil
	}

	f.submitting = true
	return true, handler(ctx, f.Values())
}

// Complete ends the submitting state.
func (f *Form) Complete() {
	f.submitting = false
}

func (f *Form) Submitting() bool {
	return f.submitting
}

// VisibleErrors returns the messages to render: none before the first submit attempt.
func (f *Form) VisibleErrors() Errors {
	if !f.showErrors {
		return Errors{}
	}
	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// PhoneError is the single message shown under the phone row; the country
// code message wins over the number message.
func (f *Form) PhoneError() string {
	errs := f.VisibleErrors()
	if msg := errs[FieldPhoneCountryCode]; msg != "" {
		return msg
	}
	return errs[FieldPhoneNumber]
}

func (f *Form) Values() model.CreatePatientRequest {
	return f.values
}

func (f *Form) revalidate(field Field) {
	if !f.showErrors {
		return
	}
	if msg := f.validateField(field); msg != "" {
		f.errors[field] = msg
	} else {
		delete(f.errors, field)
	}
}

func (f *Form) validateField(field Field) string {
	switch field {
	case FieldFullName:
		return ValidateFullName(f.values.FullName)
	case FieldEmail:
		return ValidateEmail(f.values.Email)
	case FieldPhoneCountryCode:
		return ValidateCountryCode(f.values.PhoneCountryCode)
	case FieldPhoneNumber:
		return ValidatePhoneNumber(f.values.PhoneNumber)
	case FieldDocumentPhoto:
		return ValidateDocumentPhoto(f.values.DocumentPhoto)
	}
	return ""
}
