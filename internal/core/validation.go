package core

// validation.go validates a data file before anything is reported about it.
//
// Validation happens at two levels:
//  1. Header validation: every schema column name must appear in the first line
//  2. Row validation: each record runs through rowChecks in order
//
// The first failure stops the whole file. There is no partial success: a file
// with one bad line reports that line and nothing else.

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// rowCheck is one step of the row validation chain. check may convert a
// column of rec in place; later checks see the converted value.
type rowCheck struct {
	code  ReturnCode
	check func(rec *Record) (payload any, ok bool)
}

// rowChecks run in this order for every record. The order decides which
// code a line with several problems reports.
var rowChecks = []rowCheck{
	{
		code: EmptyExperimentName,
		check: func(rec *Record) (any, bool) {
			return *rec, rec.Text(ColExperimentName) != ""
		},
	},
	{
		code: SampleIDNotInt,
		check: func(rec *Record) (any, bool) {
			raw := rec.Text(ColSampleID)
			id, ok := parseSampleID(raw)
			if !ok {
				return raw, false
			}
			rec.set(ColSampleID, id)
			return nil, true
		},
	},
	{
		code: SampleIDNegative,
		check: func(rec *Record) (any, bool) {
			return *rec, rec.Int(ColSampleID) >= 0
		},
	},
	{
		code: FauxnessNotFloat,
		check: func(rec *Record) (any, bool) {
			f, ok := parseFauxness(rec.Text(ColFauxness))
			if !ok {
				return *rec, false
			}
			rec.set(ColFauxness, f)
			return nil, true
		},
	},
	{
		code: FauxnessOutOfRange,
		check: func(rec *Record) (any, bool) {
			return *rec, inUnitRange(rec.Float(ColFauxness))
		},
	},
	{
		code: InvalidCategoryGuess,
		check: func(rec *Record) (any, bool) {
			return *rec, Category(rec.Text(ColCategoryGuess)).Valid()
		},
	},
}

// Validate reads and validates the data file at path.
//
// Validation failures come back as an Outcome with a failure code; the
// returned error is reserved for I/O problems other than a missing file.
// The file is opened read-only and closed before Validate returns.
func Validate(path string) (Outcome, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return failed(FileDoesNotExist, path), nil
		}
		return Outcome{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return failed(FileDoesNotExist, path), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	outcome, err := ValidateReader(f)
	if err != nil {
		return Outcome{}, fmt.Errorf("validate %s: %w", path, err)
	}

	slog.Debug("file validated", "path", path, "outcome", outcome.String())
	return outcome, nil
}

// ValidateReader validates data file contents read from r.
func ValidateReader(r io.Reader) (Outcome, error) {
	br := skipBOM(r)

	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return Outcome{}, fmt.Errorf("read header: %w", err)
	}
	if missing := MissingColumns(headerLine); len(missing) > 0 {
		slog.Debug("header rejected", "missing", missing)
		return failed(InvalidHeaders, trimLineEnd(headerLine)), nil
	}

	header, err := newCSVReader(strings.NewReader(headerLine)).Read()
	if err != nil {
		return Outcome{}, fmt.Errorf("parse header: %w", err)
	}

	reader := newCSVReader(br)
	var rows []Row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		// The reader is lazy about quotes and field counts, so only I/O
		// errors from r reach here.
		if err != nil {
			return Outcome{}, fmt.Errorf("read row: %w", err)
		}

		// The header occupies line 1 of the file.
		line, _ := reader.FieldPos(0)
		line++

		rec := NewRecord(header, fields)
		if outcome, ok := checkRecord(&rec, line); !ok {
			return outcome, nil
		}
		rows = append(rows, rowFromRecord(rec))
	}

	if len(rows) == 0 {
		return failed(NoData, []Row{}), nil
	}
	return succeeded(rows), nil
}

// checkRecord applies rowChecks to rec and returns the first failure.
func checkRecord(rec *Record, line int) (Outcome, bool) {
	for _, rc := range rowChecks {
		if payload, ok := rc.check(rec); !ok {
			return rowFailed(rc.code, line, payload), false
		}
	}
	return Outcome{}, true
}

// MissingColumns returns the schema columns whose names do not occur in the
// raw header line. Matching is by substring, so "sample_id_v2" satisfies
// sample_id.
func MissingColumns(headerLine string) []string {
	var missing []string
	for _, spec := range Schema {
		if !strings.Contains(headerLine, spec.Name) {
			missing = append(missing, spec.Name)
		}
	}
	return missing
}

func rowFromRecord(rec Record) Row {
	return Row{
		ExperimentName: rec.Text(ColExperimentName),
		SampleID:       rec.Int(ColSampleID),
		Fauxness:       rec.Float(ColFauxness),
		CategoryGuess:  Category(rec.Text(ColCategoryGuess)),
		record:         rec,
	}
}

// newCSVReader returns a reader that tolerates stray quotes and ragged lines.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func skipBOM(r io.Reader) *bufio.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && string(b) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// utf8BOM is the byte-order mark some spreadsheet exports prepend.
const utf8BOM = "\xef\xbb\xbf"

func trimLineEnd(s string) string {
	return strings.TrimRight(s, "\r\n")
}
