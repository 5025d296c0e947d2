package validator

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)

	// UPI virtual payment address: handle@provider.
	upiIDRegex = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,256}@[a-zA-Z]{2,64}$`)

	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: newError(field, "field is required", "validation.required", nil),
	}
}

// LenString validates that a string has exactly the given length.
func LenString(field, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) == exact
		},
		Error: newError(field, fmt.Sprintf("must be exactly %d characters long", exact),
			"validation.exact_length", map[string]any{"length": exact}),
	}
}

// ValidNumericString validates that a string contains only digits.
func ValidNumericString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return numericStringRegex.MatchString(value)
		},
		Error: newError(field, "must contain only digits", "validation.numeric_string", nil),
	}
}

// MinNum validates that a numeric value is greater than or equal to the minimum.
func MinNum[T Numeric](field string, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: newError(field, fmt.Sprintf("must be at least %v", min),
			"validation.min", map[string]any{"min": min}),
	}
}

// RangeNum validates that a numeric value lies within [min, max].
func RangeNum[T Numeric](field string, value T, min, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: newError(field, fmt.Sprintf("must be between %v and %v", min, max),
			"validation.range", map[string]any{"min": min, "max": max}),
	}
}

// OneOf validates that value is one of the allowed options.
func OneOf[T comparable](field string, value T, options []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(options, value)
		},
		Error: newError(field, fmt.Sprintf("must be one of %v", options),
			"validation.in_list", map[string]any{"options": options}),
	}
}

// NonNegativeDecimal validates that a monetary amount is zero or greater.
func NonNegativeDecimal(field string, value decimal.Decimal) Rule {
	return Rule{
		Check: func() bool {
			return !value.IsNegative()
		},
		Error: newError(field, "amount cannot be negative", "validation.non_negative_amount", nil),
	}
}

// ValidCurrencyCode validates that a string looks like an ISO 4217 currency code.
func ValidCurrencyCode(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return currencyCodeRegex.MatchString(value)
		},
		Error: newError(field, "must be a valid ISO 4217 currency code", "validation.currency_code", nil),
	}
}

// ValidPercentage validates that a value is a valid percentage (0-100).
func ValidPercentage[T Numeric](field string, value T) Rule {
	return Rule{
		Check: func() bool {
			return value >= 0 && value <= 100
		},
		Error: newError(field, "percentage must be between 0% and 100%", "validation.percentage", nil),
	}
}

// ValidUPIID validates a UPI virtual payment address such as "name@bank".
func ValidUPIID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return upiIDRegex.MatchString(value)
		},
		Error: newError(field, "must be a valid UPI id", "validation.upi_id", nil),
	}
}
