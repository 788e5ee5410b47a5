// Package dates parses and orders clinical date-of-service labels.
//
// Pivot matrices arrive with column labels in heterogeneous string forms:
// US-style MM/DD/YY and MM/DD/YYYY, and ISO YYYY-MM-DD with an optional
// time suffix. All of them name a calendar day, not an instant, so parsing
// is deliberately timezone-naive: ISO labels are cut at the 'T' separator
// and the date prefix is read as plain integers. Routing these labels
// through a timezone-aware datetime parser shifts the calendar date in
// negative-UTC-offset locales (a document stamped 2025-01-01T00:00:00Z
// renders as 12/31/24), which is exactly the bug this package exists to
// prevent. No time.Location is ever consulted.
//
// # Usage
//
//	d, err := dates.Parse("01/02/24")
//	if err != nil { ... }
//	fmt.Println(d.Display()) // "01/02/24"
//
//	ordered, err := dates.SortLabels(matrix.Columns)
package dates

import (
	"sort"
	"strconv"
	"strings"

	"github.com/clinigrid/clinigrid/pkg/errors"
)

// Date is a timezone-naive calendar date plus the original label it was
// parsed from. Raw is preserved because screens and exports display the
// label in its familiar MM/DD/YY form, while ordering uses the fields.
type Date struct {
	Year  int
	Month int
	Day   int
	Raw   string
}

// Parse converts a date label into its canonical form.
//
// Accepted forms:
//   - MM/DD/YY and MM/DD/YYYY (single-digit month/day allowed)
//   - YYYY-MM-DD with an optional THH:MM:SS... suffix (the suffix,
//     including any timezone designator, is ignored)
//
// Two-digit years are interpreted in the 2000s. Anything else fails with
// a DATE_PARSE coded error; callers decide the fallback.
func Parse(raw string) (Date, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}, errors.New(errors.ErrCodeDateParse, "empty date label")
	}

	switch {
	case strings.Contains(s, "/"):
		return parseUS(raw, s)
	case strings.Contains(s, "-"):
		return parseISO(raw, s)
	}
	return Date{}, errors.New(errors.ErrCodeDateParse, "unrecognized date label %q", raw)
}

// parseUS handles MM/DD/YY and MM/DD/YYYY.
func parseUS(raw, s string) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return Date{}, errors.New(errors.ErrCodeDateParse, "unrecognized date label %q", raw)
	}

	month, ok1 := atoi(parts[0], 1, 2)
	day, ok2 := atoi(parts[1], 1, 2)
	year, ok3 := atoi(parts[2], 2, 4)
	if !ok1 || !ok2 || !ok3 || len(parts[2]) == 3 {
		return Date{}, errors.New(errors.ErrCodeDateParse, "unrecognized date label %q", raw)
	}
	if len(parts[2]) == 2 {
		year += 2000
	}

	if err := checkRange(raw, year, month, day); err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day, Raw: raw}, nil
}

// parseISO handles YYYY-MM-DD with an optional time suffix. The label is
// cut at 'T' and only the date prefix is read, keeping the calendar date
// exactly as written regardless of any timezone designator.
func parseISO(raw, s string) (Date, error) {
	datePart, _, _ := strings.Cut(s, "T")
	datePart = strings.TrimSpace(datePart)

	parts := strings.Split(datePart, "-")
	if len(parts) != 3 {
		return Date{}, errors.New(errors.ErrCodeDateParse, "unrecognized date label %q", raw)
	}

	year, ok1 := atoi(parts[0], 4, 4)
	month, ok2 := atoi(parts[1], 1, 2)
	day, ok3 := atoi(parts[2], 1, 2)
	if !ok1 || !ok2 || !ok3 {
		return Date{}, errors.New(errors.ErrCodeDateParse, "unrecognized date label %q", raw)
	}

	if err := checkRange(raw, year, month, day); err != nil {
		return Date{}, err
	}
	return Date{Year: year, Month: month, Day: day, Raw: raw}, nil
}

// atoi parses an unsigned decimal component whose length falls within
// [minLen, maxLen]. It rejects signs and non-digit characters, which
// strconv.Atoi would accept.
func atoi(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func checkRange(raw string, year, month, day int) error {
	if year < 1900 || year > 9999 {
		return errors.New(errors.ErrCodeDateParse, "year out of range in %q", raw)
	}
	if month < 1 || month > 12 {
		return errors.New(errors.ErrCodeDateParse, "month out of range in %q", raw)
	}
	if day < 1 || day > 31 {
		return errors.New(errors.ErrCodeDateParse, "day out of range in %q", raw)
	}
	return nil
}

// Compare orders two dates strictly by (year, month, day), returning a
// negative value when a precedes b, zero when they name the same day,
// and a positive value otherwise. The Raw labels never participate.
func Compare(a, b Date) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	if a.Month != b.Month {
		return a.Month - b.Month
	}
	return a.Day - b.Day
}

// Display renders the date in the MM/DD/YY form users expect on screen.
func (d Date) Display() string {
	yy := d.Year % 100
	return pad2(d.Month) + "/" + pad2(d.Day) + "/" + pad2(yy)
}

// ISO renders the date as YYYY-MM-DD.
func (d Date) ISO() string {
	y := strconv.Itoa(d.Year)
	for len(y) < 4 {
		y = "0" + y
	}
	return y + "-" + pad2(d.Month) + "-" + pad2(d.Day)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// SortLabels returns the labels in chronological order. The input is not
// mutated. Labels naming the same day keep their original relative order,
// so sorting twice is idempotent.
//
// If any label fails to parse, SortLabels returns the DATE_PARSE error
// and no ordering; per the fallback policy the caller keeps the original
// column order and surfaces the warning.
func SortLabels(labels []string) ([]string, error) {
	type entry struct {
		label string
		date  Date
	}

	entries := make([]entry, len(labels))
	for i, label := range labels {
		d, err := Parse(label)
		if err != nil {
			return nil, err
		}
		entries[i] = entry{label: label, date: d}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i].date, entries[j].date) < 0
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.label
	}
	return out, nil
}
