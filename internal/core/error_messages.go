package core

// error_messages.go maps validation return codes and transport errors to
// user-friendly messages with codes for support reference.
//
// # Validation Codes (VAL001-VAL099)
//
// One code per row-level return code:
//
//	VAL001 - EMPTY_EXPERIMENT_NAME
//	VAL002 - SAMPLE_ID_NOT_INT
//	VAL003 - SAMPLE_ID_NEGATIVE
//	VAL004 - FAUXNESS_NOT_FLOAT
//	VAL005 - FAUXNESS_OUT_OF_RANGE
//	VAL006 - INVALID_CATEGORY_GUESS
//
// # File Codes (FILE001-FILE099)
//
//	FILE001 - FILE_DOES_NOT_EXIST
//	FILE002 - INVALID_HEADERS
//	FILE003 - NO_DATA
//	FILE004 - File too large          Patterns: "file too large", "request body too large"
//	FILE005 - No file                 Patterns: "no file provided"
//	FILE006 - File unreadable         Patterns: "permission denied"
//	FILE007 - Bad upload form         Patterns: "invalid upload form"
//
// # Request Codes (REQ001-REQ099)
//
//	REQ001 - Too many validations     Patterns: "too many concurrent validations"
//	REQ002 - Request cancelled        Patterns: "context canceled"
//	REQ003 - Request timeout          Patterns: "context deadline exceeded"
//	REQ004 - Bad line number          Patterns: "invalid line number"
//	RATE001 - Rate limited            Patterns: "rate limit"
//
// ERR000 is the fallback when nothing matches; check the logs for the
// technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// returnCodeMessages holds the message for every return code.
var returnCodeMessages = map[ReturnCode]UserMessage{
	FileDoesNotExist: {
		Message: "The data file does not exist",
		Action:  "Check the path and try again",
		Code:    "FILE001",
	},
	InvalidHeaders: {
		Message: "The header line is missing a required column",
		Action:  "The first line must name experiment_name, sample_id, fauxness and category_guess",
		Code:    "FILE002",
	},
	EmptyExperimentName: {
		Message: "A row has an empty experiment name",
		Action:  "Fill in experiment_name for every row",
		Code:    "VAL001",
	},
	SampleIDNotInt: {
		Message: "A sample ID is not a whole number or is too large",
		Action:  "Use digits only for sample_id, up to 9223372036854775807",
		Code:    "VAL002",
	},
	SampleIDNegative: {
		Message: "A sample ID is negative",
		Action:  "Use zero or a positive number for sample_id",
		Code:    "VAL003",
	},
	FauxnessNotFloat: {
		Message: "A fauxness value is not a number",
		Action:  "Use a decimal number such as 0.25 for fauxness",
		Code:    "VAL004",
	},
	FauxnessOutOfRange: {
		Message: "A fauxness value is outside 0 to 1",
		Action:  "Keep fauxness between 0 and 1 inclusive",
		Code:    "VAL005",
	},
	InvalidCategoryGuess: {
		Message: "A category guess is not recognized",
		Action:  "Use one of: real, fake, ambiguous (lowercase)",
		Code:    "VAL006",
	},
	NoData: {
		Message: "The file has a header but no data rows",
		Action:  "Add at least one row below the header",
		Code:    "FILE003",
	},
	Success: {
		Message: "The file is valid",
		Code:    "OK000",
	},
}

// MapReturnCode returns the user message for a return code. Unknown codes
// get the ERR000 fallback.
func MapReturnCode(code ReturnCode) UserMessage {
	if msg, ok := returnCodeMessages[code]; ok {
		return msg
	}
	return defaultMessage
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE004",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a data file to validate",
			Code:    "FILE005",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The data file could not be read",
			Action:  "Check the file permissions and try again",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid upload form",
		msg: UserMessage{
			Message: "Upload could not be read",
			Action:  "Submit the file as multipart/form-data in the \"file\" field",
			Code:    "FILE007",
		},
	},
	{
		pattern: "invalid line number",
		msg: UserMessage{
			Message: "Line number must be a whole number",
			Action:  "Enter a row index starting at 0",
			Code:    "REQ004",
		},
	},
	{
		pattern: "too many concurrent validations",
		msg: UserMessage{
			Message: "System is busy validating other files",
			Action:  "Please wait a moment and try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserMessage formats a message for display as
// "Message (Code: XXX). Action". The action part is dropped when empty.
func FormatUserMessage(msg UserMessage) string {
	if msg.Message == "" {
		return ""
	}
	if msg.Action == "" {
		return fmt.Sprintf("%s (Code: %s)", msg.Message, msg.Code)
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// FormatUserError maps err and formats it with FormatUserMessage.
func FormatUserError(err error) string {
	return FormatUserMessage(MapError(err))
}

// IsUserFacing reports whether err matches a known pattern rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with the message shown for it.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError wraps err with its mapped user message. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
