package utils

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize title-cases a user name for display
func Capitalize(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// Truncate shortens s to at most max runes. Slicing by byte would split
// multi-byte characters, and titles here are often Japanese.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (fn roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// DebugRoundTripper dumps every request and response to stdout. Enabled
// on the ledger client via the LEDGER_DEBUG environment variable.
func DebugRoundTripper() http.RoundTripper {
	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		d, _ := httputil.DumpRequest(r, true)
		fmt.Println(string(d))
		res, err := http.DefaultTransport.RoundTrip(r)
		if err == nil {
			d, _ = httputil.DumpResponse(res, true)
			fmt.Println(string(d))
		}
		return res, err
	})
}
