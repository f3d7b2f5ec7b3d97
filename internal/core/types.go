package core

import (
	"fmt"
	"strings"
)

// ReturnCode identifies the result of validating a data file.
type ReturnCode string

// Return codes in detection order. Success is last.
const (
	FileDoesNotExist     ReturnCode = "FILE_DOES_NOT_EXIST"
	InvalidHeaders       ReturnCode = "INVALID_HEADERS"
	EmptyExperimentName  ReturnCode = "EMPTY_EXPERIMENT_NAME"
	SampleIDNotInt       ReturnCode = "SAMPLE_ID_NOT_INT"
	SampleIDNegative     ReturnCode = "SAMPLE_ID_NEGATIVE"
	FauxnessNotFloat     ReturnCode = "FAUXNESS_NOT_FLOAT"
	FauxnessOutOfRange   ReturnCode = "FAUXNESS_OUT_OF_RANGE"
	InvalidCategoryGuess ReturnCode = "INVALID_CATEGORY_GUESS"
	NoData               ReturnCode = "NO_DATA"
	Success              ReturnCode = "SUCCESS"
)

// ReturnCodes lists every return code in detection order.
var ReturnCodes = []ReturnCode{
	FileDoesNotExist,
	InvalidHeaders,
	EmptyExperimentName,
	SampleIDNotInt,
	SampleIDNegative,
	FauxnessNotFloat,
	FauxnessOutOfRange,
	InvalidCategoryGuess,
	NoData,
	Success,
}

// Column names of the data file schema.
const (
	ColExperimentName = "experiment_name"
	ColSampleID       = "sample_id"
	ColFauxness       = "fauxness"
	ColCategoryGuess  = "category_guess"
)

// Category is the classification guess recorded for a sample.
type Category string

const (
	CategoryReal      Category = "real"
	CategoryFake      Category = "fake"
	CategoryAmbiguous Category = "ambiguous"
)

// Categories lists the accepted category guesses.
var Categories = []Category{CategoryReal, CategoryFake, CategoryAmbiguous}

// Valid reports whether c is one of the accepted categories.
// Matching is exact: "Real" is not "real".
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// FieldType represents the expected data type for a column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldFloat
	FieldEnum
)

// String returns a human-readable name for the field type.
func (ft FieldType) String() string {
	switch ft {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldFloat:
		return "float"
	case FieldEnum:
		return "enum"
	default:
		return "value"
	}
}

// FieldSpec describes one column of the data file.
type FieldSpec struct {
	Name        string    // Column header name
	Type        FieldType // Expected data type
	Description string    // Shown on the upload form and in templates
	EnumValues  []string  // Valid values for FieldEnum
}

// Schema is the fixed four-column layout every data file must carry.
// Header order in the file is free; values are addressed by name.
var Schema = []FieldSpec{
	{Name: ColExperimentName, Type: FieldText, Description: "non-empty experiment name"},
	{Name: ColSampleID, Type: FieldInteger, Description: "non-negative integer"},
	{Name: ColFauxness, Type: FieldFloat, Description: "float between 0 and 1"},
	{
		Name:        ColCategoryGuess,
		Type:        FieldEnum,
		Description: "classification guess",
		EnumValues:  []string{string(CategoryReal), string(CategoryFake), string(CategoryAmbiguous)},
	},
}

// Row is one validated line of a data file.
type Row struct {
	ExperimentName string
	SampleID       int64
	Fauxness       float64
	CategoryGuess  Category

	// record is the converted line the row was built from, in file column order.
	record Record
}

// Record returns the row as an ordered record. Rows read from a file keep
// the file's column order and any extra columns; rows built by hand use the
// schema order.
func (r Row) Record() Record {
	if len(r.record.columns) > 0 {
		return r.record
	}
	rec := Record{values: make(map[string]any, len(Schema))}
	rec.set(ColExperimentName, r.ExperimentName)
	rec.set(ColSampleID, r.SampleID)
	rec.set(ColFauxness, r.Fauxness)
	rec.set(ColCategoryGuess, string(r.CategoryGuess))
	return rec
}

// MarshalJSON encodes the row as a single object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	return r.Record().MarshalJSON()
}

// String renders the row as its native structure, e.g.
// {experiment_name: E1, sample_id: 3, fauxness: 0.5, category_guess: real}.
func (r Row) String() string {
	return r.Record().String()
}

// Outcome is the tagged result of validating a file: a failure return code
// with its diagnostic payload, or Success with the validated rows.
type Outcome struct {
	Code ReturnCode

	// Line is the 1-based file line of the offending record for row-level
	// failures, 0 otherwise.
	Line int

	payload any
	rows    []Row
}

// OK reports whether validation succeeded.
func (o Outcome) OK() bool {
	return o.Code == Success
}

// Rows returns the validated rows. It is nil unless OK.
func (o Outcome) Rows() []Row {
	return o.rows
}

// Payload returns the diagnostic payload for the return code:
//
//	FILE_DOES_NOT_EXIST     string (the path)
//	INVALID_HEADERS         string (the header line)
//	SAMPLE_ID_NOT_INT       string (the raw sample_id)
//	NO_DATA                 []Row (empty)
//	SUCCESS                 []Row
//	other row-level codes   Record (partially converted)
func (o Outcome) Payload() any {
	if o.Code == Success {
		return o.rows
	}
	return o.payload
}

// String summarizes the outcome for log lines.
func (o Outcome) String() string {
	var b strings.Builder
	b.WriteString(string(o.Code))
	if o.OK() {
		fmt.Fprintf(&b, " rows=%d", len(o.rows))
	}
	if o.Line > 0 {
		fmt.Fprintf(&b, " line=%d", o.Line)
	}
	return b.String()
}

func failed(code ReturnCode, payload any) Outcome {
	return Outcome{Code: code, payload: payload}
}

func rowFailed(code ReturnCode, line int, payload any) Outcome {
	return Outcome{Code: code, Line: line, payload: payload}
}

func succeeded(rows []Row) Outcome {
	return Outcome{Code: Success, rows: rows}
}
