package validation

import (
	"net/url"
	"reflect"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var nameRegex = regexp.MustCompile(`^[\p{L}\p{M} .'-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("skill_list", SkillList)
	_ = v.RegisterValidation("optional_url", OptionalURL)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
}

// ValidName accepts letters plus common name punctuation. Empty passes; pair with required.
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// SkillList checks every entry of a string slice is non-empty and at most 50 runes.
func SkillList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		n := utf8.RuneCountInString(field.Index(i).String())
		if n == 0 || n > 50 {
			return false
		}
	}
	return true
}

// OptionalURL accepts an empty string or an absolute URL with a host.
// Unlike omitempty it also lets an explicit "" through on pointer fields, which PATCH uses to clear a link.
func OptionalURL(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	u, err := url.Parse(val)
	return err == nil && u.Scheme != "" && u.Host != ""
}
