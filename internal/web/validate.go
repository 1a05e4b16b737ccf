package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/JonMunkholm/lawdir/internal/core"
)

// maxJSONBody caps request bodies on JSON endpoints.
const maxJSONBody = 1 << 20

// requestValidator checks decoded request bodies against struct tags.
// Field names in errors use the JSON name.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// Required text must survive trimming, as it does on import.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Same rules the importer applies to file rows.
	_ = v.RegisterValidation("lawyer_email", func(fl validator.FieldLevel) bool {
		return core.IsValidEmail(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("lawyer_phone", func(fl validator.FieldLevel) bool {
		return core.IsValidPhone(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
		_, ok := core.ParseAvailability(fl.Field().String())
		return ok
	})
	return &requestValidator{validate: v}
}

// Struct validates s and returns per-field messages, or nil when valid.
func (rv *requestValidator) Struct(s any) map[string]string {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required", "notblank":
			fields[field] = field + " is required"
		case "lawyer_email":
			fields[field] = field + " must be a valid email address"
		case "lawyer_phone":
			fields[field] = field + " must match (XXX) XXX-XXXX"
		case "availability":
			fields[field] = field + " must be one of Available, Limited, Busy"
		case "url":
			fields[field] = field + " must be a valid URL"
		case "min":
			fields[field] = field + " must have at least " + e.Param() + " item(s)"
		case "gte":
			fields[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			fields[field] = field + " must be less than or equal to " + e.Param()
		default:
			fields[field] = field + " is invalid"
		}
	}
	return fields
}

// decodeJSON reads a JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON object", errBadRequest)
	}
	return nil
}
