package models

import "strings"

// ToAPIDate converts a form date (yyyy-MM-dd) to the storage
// representation (yyyyMMdd).
func ToAPIDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// ToFormDate converts a storage date (yyyyMMdd) back to the form
// representation (yyyy-MM-dd).
func ToFormDate(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[0:4] + "-" + date[4:6] + "-" + date[6:8]
}
