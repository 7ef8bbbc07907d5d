package wholesale

import (
	"strings"
	"time"
)

// DateLayout is the day/month/year layout used by the source and by callers.
// Single-digit days and months are accepted.
const DateLayout = "2/1/2006"

// ParseDate parses a DD/MM/YYYY value. Field names the input in errors.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ParseError{Field: field, Value: value, Err: err}
	}
	return t, nil
}

// DateRange is an inclusive calendar-date window. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// ParseDateRange parses optional DD/MM/YYYY bounds; blank means absent.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(start) != "" {
		t, err := ParseDate(FieldStartDate, start)
		if err != nil {
			return DateRange{}, err
		}
		r.Start = &t
	}
	if strings.TrimSpace(end) != "" {
		t, err := ParseDate(FieldEndDate, end)
		if err != nil {
			return DateRange{}, err
		}
		r.End = &t
	}
	return r, nil
}

// Unbounded reports whether neither side constrains the window.
func (r DateRange) Unbounded() bool {
	return r.Start == nil && r.End == nil
}

// Contains reports whether t falls inside the window, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// FilterByDateRange keeps rows whose Last Revision Date is within
// [start, end]. With both bounds blank the input slice is returned as is.
// A malformed bound or row date fails the whole call with a ParseError.
func FilterByDateRange(rows []RawRow, start, end string) ([]RawRow, error) {
	r, err := ParseDateRange(start, end)
	if err != nil {
		return nil, err
	}
	return r.Filter(rows)
}

// Filter applies the window to rows in order.
func (r DateRange) Filter(rows []RawRow) ([]RawRow, error) {
	if r.Unbounded() {
		return rows, nil
	}
	filtered := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		revised, err := ParseDate(ColumnLastRevisionDate, row.LastRevisionDate)
		if err != nil {
			return nil, err
		}
		if r.Contains(revised) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}
