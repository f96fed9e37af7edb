package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nabz863/group17-freelance-sd-sub000/model"
)

const dateLayout = "2006-01-02"

// Validate checks submitted sections against the template's parameter
// definitions. Every editable template section with parameters must appear,
// and every submitted section must match a template section by title. All
// problems are collected in one pass so the caller can report everything at
// once.
func Validate(sections []model.SubmittedSection, tmpl *model.ContractTemplate) (bool, []model.FieldError) {
	var errs []model.FieldError

	byTitle := make(map[string]*model.SubmittedSection, len(sections))
	for i := range sections {
		byTitle[sections[i].Title] = &sections[i]
	}

	for _, sub := range sections {
		if tmpl.SectionByTitle(sub.Title) == nil {
			errs = append(errs, model.FieldError{
				Field:   sub.Title,
				Message: fmt.Sprintf("Unknown section: %s", sub.Title),
			})
		}
	}

	for _, ts := range tmpl.Sections {
		if !ts.Editable || len(ts.Parameters) == 0 {
			continue
		}

		sub, ok := byTitle[ts.Title]
		if !ok {
			errs = append(errs, model.FieldError{
				Field:   ts.Title,
				Message: fmt.Sprintf("Missing required section: %s", ts.Title),
			})
			continue
		}

		for name, def := range ts.Parameters {
			errs = append(errs, validateParam(name, def, sub.Parameters)...)
		}
	}

	return len(errs) == 0, errs
}

func validateParam(name string, def model.ParamDef, params map[string]any) []model.FieldError {
	value, present := params[name]
	if !present || isEmpty(value) {
		if def.Required {
			return []model.FieldError{{Field: name, Message: fmt.Sprintf("%s is required", name)}}
		}
		return nil
	}

	switch def.Type {
	case model.ParamNumber:
		return validateNumber(name, def, value)
	case model.ParamDate:
		return validateDate(name, def, value, params)
	case model.ParamSelect:
		return validateSelect(name, def, value)
	}
	return nil
}

func validateNumber(name string, def model.ParamDef, value any) []model.FieldError {
	n, ok := toNumber(value)
	if !ok {
		return []model.FieldError{{Field: name, Message: fmt.Sprintf("%s must be a number", name)}}
	}

	var errs []model.FieldError
	if def.Min != nil && n < *def.Min {
		errs = append(errs, model.FieldError{
			Field:   name,
			Message: fmt.Sprintf("%s must be at least %s", name, formatNumber(*def.Min)),
		})
	}
	if def.Max != nil && n > *def.Max {
		errs = append(errs, model.FieldError{
			Field:   name,
			Message: fmt.Sprintf("%s must be at most %s", name, formatNumber(*def.Max)),
		})
	}
	return errs
}

func validateDate(name string, def model.ParamDef, value any, params map[string]any) []model.FieldError {
	t, ok := toDate(value)
	if !ok {
		return []model.FieldError{{
			Field:   name,
			Message: fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", name),
		}}
	}

	// Cross-field ordering: "after:otherField" requires a strictly later
	// date when both fields are present and parse.
	if after, found := strings.CutPrefix(def.Validation, "after:"); found {
		if otherRaw, present := params[after]; present {
			if other, okOther := toDate(otherRaw); okOther && !t.After(other) {
				return []model.FieldError{{
					Field:   name,
					Message: fmt.Sprintf("%s must be after %s", name, after),
				}}
			}
		}
	}
	return nil
}

func validateSelect(name string, def model.ParamDef, value any) []model.FieldError {
	s := fmt.Sprintf("%v", value)
	for _, opt := range def.Options {
		if s == opt {
			return nil
		}
	}
	return []model.FieldError{{
		Field:   name,
		Message: fmt.Sprintf("%s must be one of: %s", name, strings.Join(def.Options, ", ")),
	}}
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return t, err == nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
