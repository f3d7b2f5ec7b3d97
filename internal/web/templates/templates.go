// Package templates holds the templ components for the validation UI.
//
// Edit the .templ files and regenerate the _templ.go files with
// `templ generate`.
package templates

//go:generate templ generate

import "fmt"

// ResultView is everything the result page shows for one validation.
type ResultView struct {
	ValidationID string
	Filename     string

	ReturnCode string
	OK         bool

	// Message, Action and Code describe the return code for people.
	Message string
	Action  string
	Code    string

	Rows         int
	FauxnessLow  string
	FauxnessHigh string

	SummaryJSON string

	// Row is the rendered row when a line number was requested.
	Row       string
	RowFormat string

	// Notice replaces Row when the line number was out of range.
	Notice string
}

func (v ResultView) stats() string {
	return fmt.Sprintf("%d rows, fauxness from %s to %s", v.Rows, v.FauxnessLow, v.FauxnessHigh)
}

func (v ResultView) rowHeading() string {
	if v.RowFormat == "" {
		return "Row"
	}
	return fmt.Sprintf("Row (%s)", v.RowFormat)
}
