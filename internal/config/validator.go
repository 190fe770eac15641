package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ecopia-map/pcd_dataset/tools"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("invalid options: %s", strings.Join(v, "; "))
}

// Validate checks field constraints and then the rules spanning several fields
func Validate(opts interface{}) error {
	if err := validate.Struct(opts); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	switch o := opts.(type) {
	case *DatasetOptions:
		if err := validateNormalization(o.Normalization); err != nil {
			return err
		}
		return validateShards(o)
	case *NormalizeOptions:
		return validateNormalization(o.Normalization)
	case *ExportOptions:
		return validateNormalization(o.Normalization)
	}
	return nil
}

// A target range collapsed to a single value would map every cloud onto one point
func validateNormalization(opts NormalizationOptions) error {
	if opts.Enabled && tools.IsFloatEqual(opts.TargetMin, opts.TargetMax) {
		return ValidationErrors{fmt.Sprintf("target range [%v, %v] is narrower than %v", opts.TargetMin, opts.TargetMax, tools.FloatMin)}
	}
	return nil
}

func validateShards(opts *DatasetOptions) error {
	var errs ValidationErrors
	for _, shard := range opts.Shards {
		sum := 0
		for id, n := range shard.Take {
			if _, ok := opts.SourcePaths[id]; !ok {
				errs = append(errs, fmt.Sprintf("shard %q takes from unknown class %d", shard.Name, id))
			}
			sum += n
		}
		if len(shard.Take) > 0 && sum < shard.Size {
			errs = append(errs, fmt.Sprintf("shard %q takes %d samples, fewer than its size %d", shard.Name, sum, shard.Size))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Namespace())
		case "min":
			message = fmt.Sprintf("%s needs at least %s entries", err.Namespace(), err.Param())
		case "gt", "gte":
			message = fmt.Sprintf("%s must be %s %s", err.Namespace(), comparison(err.Tag()), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be greater than %s", err.Namespace(), err.Param())
		case "nefield":
			message = fmt.Sprintf("%s must differ from %s", err.Namespace(), err.Param())
		case "unique":
			message = fmt.Sprintf("%s must have unique %s values", err.Namespace(), err.Param())
		case "excludesall":
			message = fmt.Sprintf("%s must not contain %q", err.Namespace(), err.Param())
		}

		out = append(out, message)
	}
	return out
}

func comparison(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}
