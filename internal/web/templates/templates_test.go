package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestPage_WrapsBody(t *testing.T) {
	out := render(t, Page("Upload <1>", UploadForm()))

	assert.True(t, strings.HasPrefix(strings.ToLower(out), "<!doctype html>"))
	assert.Contains(t, out, "<title>Upload &lt;1&gt;</title>")
	assert.Contains(t, out, `action="/validate"`)
	assert.Contains(t, out, `name="linenum"`)
	assert.True(t, strings.HasSuffix(out, "</html>"))
}

func TestResult_Success(t *testing.T) {
	out := render(t, Result(ResultView{
		ValidationID: "abc",
		Filename:     "good.faux",
		ReturnCode:   "SUCCESS",
		OK:           true,
		Message:      "File is valid",
		Rows:         2,
		FauxnessLow:  "0.1",
		FauxnessHigh: "0.9",
		SummaryJSON:  `{"return_code":"SUCCESS"}`,
		Row:          `{"experiment_name":"<E1>"}`,
		RowFormat:    "JSON",
	}))

	assert.Contains(t, out, "2 rows, fauxness from 0.1 to 0.9")
	assert.Contains(t, out, "Row (JSON)")
	assert.Contains(t, out, "&lt;E1&gt;")
	assert.NotContains(t, out, "<E1>")
	assert.NotContains(t, out, `role="alert"`)
}

func TestResult_FailureShowsAlert(t *testing.T) {
	out := render(t, Result(ResultView{
		ReturnCode: "SAMPLE_ID_NEGATIVE",
		Message:    "A sample ID is negative",
		Action:     "Use zero or a positive number",
		Code:       "VAL003",
	}))

	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, "Code: VAL003")
	assert.Contains(t, out, "Use zero or a positive number")
}

func TestResult_NoticeReplacesRow(t *testing.T) {
	out := render(t, Result(ResultView{
		OK:     true,
		Row:    "should not appear",
		Notice: "Invalid argument for line number.",
	}))

	assert.Contains(t, out, "Invalid argument for line number.")
	assert.NotContains(t, out, "should not appear")
}

func TestErrorPage_AlertThenForm(t *testing.T) {
	out := render(t, ErrorPage("No file was selected", "Please select a data file", "FILE005"))

	alert := strings.Index(out, `role="alert"`)
	form := strings.Index(out, `action="/validate"`)
	require.GreaterOrEqual(t, alert, 0)
	require.GreaterOrEqual(t, form, 0)
	assert.Less(t, alert, form)
	assert.Contains(t, out, "Code: FILE005")
}

func TestResult_RowHeadingWithoutFormat(t *testing.T) {
	out := render(t, Result(ResultView{OK: true, Row: "{experiment_name: E1}"}))

	assert.Contains(t, out, "<h3>Row</h3>")
}

func TestErrorAlert_OmitsEmptyParts(t *testing.T) {
	out := render(t, ErrorAlert("Too many requests", "", ""))

	assert.Contains(t, out, "Too many requests")
	assert.NotContains(t, out, "<p>")
	assert.NotContains(t, out, "Code:")
}
