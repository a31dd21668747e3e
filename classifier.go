package labdesk

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// values like "1e-999999999" would need an enormous rescale to be compared exactly,
// beyond this exponent they are compared as float64
const maxValueExponent = 300

// Classify compares a raw entered value against inclusive reference bounds.
// Missing bounds or a value that is not a number give ResultStatusNone.
func Classify(rawValue string, low, high *float64) ResultStatus {
	if !isFiniteBound(low) || !isFiniteBound(high) {
		return ResultStatusNone
	}

	trimmed := strings.TrimSpace(rawValue)
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return ResultStatusNone
	}
	if value.Exponent() > maxValueExponent || value.Exponent() < -maxValueExponent {
		return classifyFloat(trimmed, *low, *high)
	}

	if value.LessThan(decimal.NewFromFloat(*low)) {
		return ResultStatusLow
	}
	if value.GreaterThan(decimal.NewFromFloat(*high)) {
		return ResultStatusHigh
	}
	return ResultStatusNormal
}

// classifyFloat handles magnitudes outside the exact range. Overflow parses to ±Inf and
// underflow to ±0, both still order correctly against finite bounds.
func classifyFloat(value string, low, high float64) ResultStatus {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return ResultStatusNone
	}
	if math.IsNaN(parsed) {
		return ResultStatusNone
	}

	switch {
	case parsed < low:
		return ResultStatusLow
	case parsed > high:
		return ResultStatusHigh
	default:
		return ResultStatusNormal
	}
}

// ClassifyParameter - text parameters are never classified, whatever they contain
func ClassifyParameter(definition ParameterDefinition, rawValue string) ResultStatus {
	if definition.IsText {
		return ResultStatusNone
	}
	return Classify(rawValue, definition.Low, definition.High)
}

func isFiniteBound(bound *float64) bool {
	return bound != nil && !math.IsNaN(*bound) && !math.IsInf(*bound, 0)
}
