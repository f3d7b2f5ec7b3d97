package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestMapReturnCode(t *testing.T) {
	seen := make(map[string]ReturnCode)
	for _, code := range ReturnCodes {
		msg := MapReturnCode(code)
		if msg.Message == "" || msg.Code == "" {
			t.Errorf("MapReturnCode(%s) = %+v, want message and code", code, msg)
			continue
		}
		if prev, dup := seen[msg.Code]; dup {
			t.Errorf("code %s used by both %s and %s", msg.Code, prev, code)
		}
		seen[msg.Code] = code
	}

	if got := MapReturnCode("SOMETHING_ELSE").Code; got != "ERR000" {
		t.Errorf("unknown return code maps to %s, want ERR000", got)
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "body too large maps to file too large",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE004",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "missing upload",
			err:         errors.New("no file provided"),
			wantCode:    "FILE005",
			wantMessage: "No file was selected",
		},
		{
			name:        "wrapped permission error",
			err:         fmt.Errorf("open data.faux: %w", fs.ErrPermission),
			wantCode:    "FILE006",
			wantMessage: "The data file could not be read",
		},
		{
			name:        "size beats form error",
			err:         fmt.Errorf("invalid upload form: %w", errors.New("http: request body too large")),
			wantCode:    "FILE004",
			wantMessage: "File exceeds the maximum upload size",
		},
		{
			name:        "bad line number",
			err:         errors.New(`invalid line number "two"`),
			wantCode:    "REQ004",
			wantMessage: "Line number must be a whole number",
		},
		{
			name:        "limiter saturated",
			err:         ErrTooManyValidations,
			wantCode:    "REQ001",
			wantMessage: "System is busy validating other files",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("CONTEXT DEADLINE EXCEEDED"),
			wantCode:    "REQ003",
			wantMessage: "Request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapReturnCode_SampleIDOverflow(t *testing.T) {
	outcome := mustValidate(t, testHeader+"\nE1,99999999999999999999,0.5,real\n")
	if outcome.Code != SampleIDNotInt {
		t.Fatalf("Code = %s, want %s", outcome.Code, SampleIDNotInt)
	}

	msg := MapReturnCode(outcome.Code)
	if !strings.Contains(msg.Message, "too large") {
		t.Errorf("Message = %q, want it to cover oversized IDs", msg.Message)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(fmt.Errorf("stat data.faux: %w", fs.ErrPermission))
	want := "The data file could not be read (Code: FILE006). Check the file permissions and try again"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestFormatUserMessage(t *testing.T) {
	got := FormatUserMessage(MapReturnCode(SampleIDNegative))
	want := "A sample ID is negative (Code: VAL003). Use zero or a positive number for sample_id"
	if got != want {
		t.Errorf("FormatUserMessage() = %q, want %q", got, want)
	}

	if got := FormatUserMessage(MapReturnCode(Success)); got != "The file is valid (Code: OK000)" {
		t.Errorf("FormatUserMessage(success) = %q", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: errors.New("no file provided"), want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		userErr := NewUserError(ErrTooManyValidations)

		if userErr.Error() != "System is busy validating other files" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrTooManyValidations) {
			t.Error("Unwrap() should return original error")
		}
	})
}
