// Package month implements arithmetic on the YYYYMM month tokens the
// Ledger API uses to key event listings.
package month

import "time"

// tokenLayout is the Go time layout for a YYYYMM token
const tokenLayout = "200601"

// Parse converts a YYYYMM token to the first day of that month
func Parse(token string) (time.Time, error) {
	return time.Parse(tokenLayout, token)
}

// Format converts a time to its YYYYMM token
func Format(t time.Time) string {
	return t.Format(tokenLayout)
}

// Previous returns the token for the month before the given one,
// rolling over year boundaries.
func Previous(token string) (string, error) {
	t, err := Parse(token)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, -1, 0)), nil
}

// Next returns the token for the month after the given one,
// rolling over year boundaries.
func Next(token string) (string, error) {
	t, err := Parse(token)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 1, 0)), nil
}

// Current returns the token for the current wall-clock month
func Current() string {
	return Format(time.Now())
}
