package chart

import (
	"github.com/datainsight-lab/datainsight/internal/core/aggregation"
	"github.com/datainsight-lab/datainsight/internal/core/dataset"
)

// Validate checks a spec against the dataset it will be drawn from.
// It returns nil or an *InvalidSpecificationError naming the first
// offending field, and has no side effects.
func Validate(spec Spec, ds *dataset.Dataset) error {
	if !spec.Kind.Valid() {
		return newFieldError("kind", "unsupported chart kind %q", spec.Kind)
	}

	if spec.XField == "" {
		return newFieldError("x_field", "x_field is required")
	}
	x, ok := ds.Column(spec.XField)
	if !ok {
		return newFieldError("x_field", "column %q does not exist", spec.XField)
	}
	if (spec.Kind == KindHistogram || spec.Kind == KindScatter) && !x.Kind.Numeric() {
		return newTypeMismatchError("x_field", x.Name, string(x.Kind))
	}

	if err := validateY(spec, ds); err != nil {
		return err
	}
	if err := validateExtra(spec); err != nil {
		return err
	}
	return nil
}

func validateY(spec Spec, ds *dataset.Dataset) *InvalidSpecificationError {
	if spec.Kind == KindHistogram {
		return nil
	}
	if spec.YField == "" {
		if spec.Kind.RequiresY() {
			return newFieldError("y_field", "y_field is required for %s charts", spec.Kind)
		}
		if op := spec.Op(); op != aggregation.OpCount {
			return newFieldError("y_field", "y_field is required by op %q", op)
		}
		return nil
	}

	y, ok := ds.Column(spec.YField)
	if !ok {
		return newFieldError("y_field", "column %q does not exist", spec.YField)
	}
	if !y.Kind.Numeric() && spec.Op() != aggregation.OpCount {
		return newTypeMismatchError("y_field", y.Name, string(y.Kind))
	}
	if spec.Kind.RequiresY() && !y.Kind.Numeric() {
		return newTypeMismatchError("y_field", y.Name, string(y.Kind))
	}
	return nil
}

func validateExtra(spec Spec) *InvalidSpecificationError {
	if raw, ok := spec.Extra[HintOp]; ok {
		op, isString := raw.(string)
		if !isString || !aggregation.ValidOperator(op) {
			return newFieldError("extra."+HintOp, "unsupported aggregation operator %v", raw)
		}
	}
	for _, key := range []string{HintBins, HintTopN} {
		n, present, err := spec.intHint(key)
		if !present {
			continue
		}
		if err != nil {
			return newFieldError("extra."+key, "%s", err.Error())
		}
		if n < 0 {
			return newFieldError("extra."+key, "%s must not be negative", key)
		}
		if key == HintBins && n > MaxBins {
			return newFieldError("extra."+key, "bins must not exceed %d", MaxBins)
		}
	}
	if raw, ok := spec.Extra[HintColor]; ok {
		if _, isString := raw.(string); !isString {
			return newFieldError("extra."+HintColor, "color must be a column name")
		}
	}
	return nil
}
