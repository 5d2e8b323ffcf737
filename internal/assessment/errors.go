package assessment

import "errors"

// Validation failures are reported against these sentinels so transport
// layers can map them with errors.Is. Wrapped messages carry the
// user-facing detail (offending row, exact row requirement).
var (
	// ErrSchema: the input table has too few columns.
	ErrSchema = errors.New("input must have at least 3 columns (theme, community capacity, organization capability)")

	// ErrRowCount: fewer data rows than the required nine.
	ErrRowCount = errors.New("insufficient data rows")

	// ErrValueType: a capacity or capability cell is not numeric.
	ErrValueType = errors.New("all capacity values must be numeric")

	// ErrValueRange: a value falls outside [0, 10].
	ErrValueRange = errors.New("value out of range")
)
