package helper

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	filenamePattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	contentTypePattern = regexp.MustCompile(`^[a-zA-Z0-9.+\-]+/[a-zA-Z0-9.+\-]+$`)
)

// Validator wraps validator/v10 with the upload-specific tags:
//
//	safe_filename    letters, digits, dot, hyphen, underscore
//	content_type     type/subtype
//	known_extension  extension present in the MIME table
//	extension_mime=F content type matches the extension of sibling field F
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})

	mustRegister(v, "safe_filename", func(fl validator.FieldLevel) bool {
		return filenamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "content_type", func(fl validator.FieldLevel) bool {
		return contentTypePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "known_extension", func(fl validator.FieldLevel) bool {
		_, ok := GetMimeTypeFromExtension(fl.Field().String())
		return ok
	})
	mustRegister(v, "extension_mime", func(fl validator.FieldLevel) bool {
		filename, ok := siblingString(fl.Parent(), fl.Param())
		if !ok {
			return false
		}
		// Unknown extensions are reported on the filename field instead.
		if _, known := GetMimeTypeFromExtension(filename); !known {
			return true
		}
		return MatchesExtension(filename, fl.Field().String())
	})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// Struct validates s and returns one message per offending field, keyed by
// the JSON path of the field (for example "parts[2].eTag"). A nil map means
// s is valid.
func (v *Validator) Struct(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		if _, seen := out[path]; seen {
			continue
		}
		out[path] = message(s, fe)
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(s any, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "min":
		return boundMessage("at least", fe)
	case "max":
		return boundMessage("at most", fe)
	case "safe_filename":
		return "may only contain letters, digits, '.', '-' and '_'"
	case "content_type":
		return "must be a MIME type of the form type/subtype"
	case "known_extension":
		return fmt.Sprintf("file extension not allowed: %q", FileExtension(fmt.Sprint(fe.Value())))
	case "extension_mime":
		filename, _ := siblingString(reflect.ValueOf(s), fe.Param())
		expected, _ := GetMimeTypeFromExtension(filename)
		return fmt.Sprintf("content type does not match the file extension, expected %s", expected)
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func boundMessage(qualifier string, fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", qualifier, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s item(s)", qualifier, fe.Param())
	default:
		return fmt.Sprintf("must be %s %s", qualifier, fe.Param())
	}
}

func siblingString(parent reflect.Value, name string) (string, bool) {
	for parent.Kind() == reflect.Pointer || parent.Kind() == reflect.Interface {
		if parent.IsNil() {
			return "", false
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return "", false
	}
	f := parent.FieldByName(name)
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}
