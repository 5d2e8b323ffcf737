package assessment

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FromCSV reads CSV-like input and normalizes it into an Assessment.
// Rows may have varying field counts; validation is deferred to FromRecords.
func FromCSV(r io.Reader) (*Assessment, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return FromRecords(records)
}

// FromRecords normalizes raw tabular records into an Assessment.
//
// Column 1 is the theme label, column 2 the community capacity, column 3 the
// organization capability. An optional header row is detected by attempting
// numeric coercion of the first row's capacity columns; when either fails
// the row is treated as a header and skipped. Exactly nine data rows must
// follow, every capacity must parse as a float, and every value must lie in
// [0, 10]. The first out-of-range violation is reported by its original
// one-based row position, header included.
func FromRecords(records [][]string) (*Assessment, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: must have at least %d rows of data", ErrRowCount, Dimensions)
	}
	if len(records[0]) < 3 {
		return nil, ErrSchema
	}

	start := 0
	if _, err := parseCell(records[0][1]); err != nil {
		start = 1
	} else if _, err := parseCell(records[0][2]); err != nil {
		start = 1
	}

	if len(records) < start+Dimensions {
		return nil, fmt.Errorf("%w: must have at least %d rows of data (including headers if present)",
			ErrRowCount, Dimensions+start)
	}

	a := &Assessment{
		Labels:       make([]string, Dimensions),
		Community:    make([]float64, Dimensions),
		Organization: make([]float64, Dimensions),
	}

	for i := 0; i < Dimensions; i++ {
		row := records[start+i]
		if len(row) < 3 {
			return nil, ErrSchema
		}

		a.Labels[i] = strings.TrimSpace(row[0])

		comm, err := parseCell(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: found non-numeric value %q", ErrValueType, strings.TrimSpace(row[1]))
		}
		org, err := parseCell(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: found non-numeric value %q", ErrValueType, strings.TrimSpace(row[2]))
		}
		a.Community[i] = comm
		a.Organization[i] = org
	}

	for i := 0; i < Dimensions; i++ {
		if !inRange(a.Community[i]) || !inRange(a.Organization[i]) {
			return nil, fmt.Errorf("%w: values in row %d must be between 0 and 10",
				ErrValueRange, i+start+1)
		}
	}

	return a, nil
}

// FromSliders normalizes the interactive workflow's nine community capacity
// values, pairing them against the fixed interactive themes and the
// reference organization capability vector. Slider values are integers in
// [0, 10] by construction of the control, but transported values are
// re-checked with the same taxonomy rather than trusted.
func FromSliders(values []int) (*Assessment, error) {
	if len(values) != Dimensions {
		return nil, fmt.Errorf("%w: expected exactly %d slider values, got %d",
			ErrRowCount, Dimensions, len(values))
	}

	a := &Assessment{
		Labels:       make([]string, Dimensions),
		Community:    make([]float64, Dimensions),
		Organization: make([]float64, Dimensions),
	}
	copy(a.Labels, InteractiveThemes)
	copy(a.Organization, ReferenceCapabilities)

	for i, v := range values {
		if !inRange(float64(v)) {
			return nil, fmt.Errorf("%w: value for %q must be between 0 and 10",
				ErrValueRange, InteractiveThemes[i])
		}
		a.Community[i] = float64(v)
	}

	return a, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
