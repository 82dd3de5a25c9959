package validatorx

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

var (
	gmailPattern    = regexp.MustCompile(`^[^\s@]+@gmail\.com$`)
	dialCodePattern = regexp.MustCompile(`^\+\d{1,4}$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

const (
	MinPhoneDigits = 6
	MaxPhoneDigits = 20
)

// Init initializes the validator singleton (idempotent) and registers the
// patient specific tags:
//
//	personname  letters and spaces only
//	gmail       one or more non-space, non-@ characters followed by @gmail.com
//	dialcode    "+" followed by 1 to 4 digits
//	digits      digits only
//	phonedigits 6 to 20 digits once whitespace is stripped
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	nv := gpvalidator.New()
	_ = nv.RegisterValidation("personname", isPersonName)
	_ = nv.RegisterValidation("gmail", matches(gmailPattern))
	_ = nv.RegisterValidation("dialcode", matches(dialCodePattern))
	_ = nv.RegisterValidation("digits", matches(digitsPattern))
	_ = nv.RegisterValidation("phonedigits", isPhoneDigits)
	v = nv
}

func get() *gpvalidator.Validate {
	Init()
	return v
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	return get().Struct(s)
}

// Var validates a single value against a tag expression.
func Var(field interface{}, tag string) error {
	return get().Var(field, tag)
}

// StripSpaces removes every whitespace rune from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func matches(re *regexp.Regexp) gpvalidator.Func {
	return func(fl gpvalidator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func isPersonName(fl gpvalidator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func isPhoneDigits(fl gpvalidator.FieldLevel) bool {
	s := StripSpaces(fl.Field().String())
	return digitsPattern.MatchString(s) && len(s) >= MinPhoneDigits && len(s) <= MaxPhoneDigits
}
