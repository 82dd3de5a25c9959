package registration

import (
	"strings"

	"github.com/muhammadheryan/patient-registration/constant"
	"github.com/muhammadheryan/patient-registration/model"
	validatorx "github.com/muhammadheryan/patient-registration/utils/validator"
)

const (
	MsgFullNameRequired = "Full name is required"
	MsgFullNameLetters  = "Full name should only contain letters and spaces"
	MsgFullNameShort    = "Full name must be at least 2 characters"

	MsgEmailRequired = "Email is required"
	MsgEmailDomain   = "Email must be a @gmail.com address"
	MsgEmailInvalid  = "Please enter a valid email address"

	MsgCountryCodeRequired = "Country code is required"
	MsgCountryCodeFormat   = "Country code must be in format +XXX"

	MsgPhoneRequired = "Phone number is required"
	MsgPhoneDigits   = "Phone number must contain only numbers"
	MsgPhoneShort    = "Phone number must be at least 6 digits"
	MsgPhoneLong     = "Phone number must be at most 20 digits"

	MsgPhotoRequired = "Document photo is required"
	MsgPhotoType     = "Document photo must be a .jpg file"
	MsgPhotoSize     = "Document photo must be smaller than 5MB"
)

// Each validator returns the first failing rule's message, or "" when valid.

func ValidateFullName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return MsgFullNameRequired
	}
	if validatorx.Var(value, "personname") != nil {
		return MsgFullNameLetters
	}
	if len([]rune(trimmed)) < 2 {
		return MsgFullNameShort
	}
	return ""
}

func ValidateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgEmailRequired
	}
	if validatorx.Var(value, "endswith=@gmail.com") != nil {
		return MsgEmailDomain
	}
	if validatorx.Var(value, "gmail") != nil {
		return MsgEmailInvalid
	}
	return ""
}

func ValidateCountryCode(value string) string {
	if value == "" {
		return MsgCountryCodeRequired
	}
	if validatorx.Var(value, "dialcode") != nil {
		return MsgCountryCodeFormat
	}
	return ""
}

func ValidatePhoneNumber(value string) string {
	if strings.TrimSpace(value) == "" {
		return MsgPhoneRequired
	}
	digits := validatorx.StripSpaces(value)
	if validatorx.Var(digits, "digits") != nil {
		return MsgPhoneDigits
	}
	if len(digits) < validatorx.MinPhoneDigits {
		return MsgPhoneShort
	}
	if len(digits) > validatorx.MaxPhoneDigits {
		return MsgPhoneLong
	}
	return ""
}

// ValidateDocumentPhoto checks the type the upload reports and its size.
func ValidateDocumentPhoto(photo *model.DocumentPhoto) string {
	if photo == nil {
		return MsgPhotoRequired
	}
	contentType := strings.ToLower(photo.ContentType)
	if !strings.Contains(contentType, "jpeg") && !strings.Contains(contentType, "jpg") {
		return MsgPhotoType
	}
	if photo.Size > constant.MaxPhotoSize {
		return MsgPhotoSize
	}
	return ""
}
