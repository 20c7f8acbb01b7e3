package http

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern     = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	registerOnce     sync.Once
	errMalformedBody = errors.New("malformed request body")
)

// registerValidators installs the custom rules on gin's validator engine.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	})
}

// bind decodes the JSON body into req, normalizes it and validates it.
// It returns the field errors to report, or errMalformedBody.
func bind(c *gin.Context, req any) ([]FieldError, error) {
	if c.Request.Body == nil {
		return nil, errMalformedBody
	}
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return []FieldError{{Field: typeErr.Field, Message: "Invalid value for " + typeErr.Field}}, nil
		}
		return nil, errMalformedBody
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	err := binding.Validator.ValidateStruct(req)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	root := reflect.TypeOf(req)
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: fieldMessage(root, fe)})
	}
	return out, nil
}

// fieldPath renders the JSON path of the failed field without the root type name.
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

// fieldMessage returns the msg_<rule> or msg tag of the failed field, falling back to a generic text.
func fieldMessage(root reflect.Type, fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	t := root
	var field reflect.StructField
	for _, p := range parts[1:] {
		name, _, _ := strings.Cut(p, "[")
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		f, ok := t.FieldByName(name)
		if !ok {
			break
		}
		field, t = f, f.Type
	}
	if msg := field.Tag.Get("msg_" + fe.Tag()); msg != "" {
		return msg
	}
	if msg := field.Tag.Get("msg"); msg != "" {
		return msg
	}
	return "Invalid value for " + fe.Field()
}
