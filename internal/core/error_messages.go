package core

// error_messages.go maps technical errors to user-facing messages with a
// support code. Typed errors are matched first with errors.As/errors.Is; the
// pattern table is the fallback for wrapped library errors.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - Unsupported format (FormatError)
//	FILE003 - Unreadable file (ParseError)
//	FILE004 - No file provided
//	FILE005 - Empty file
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - One or more rows failed validation (ValidationErrors)
//	VAL002 - Single field violation (ValidationError)
//	VAL003 - Duplicate email (DuplicateError)
//	VAL004 - Invalid request body
//
// # Import Errors (IMP001-IMP099)
//
//	IMP001 - Too many concurrent imports
//	IMP002 - Import cancelled
//	IMP003 - Import timed out
//
// # Record Errors (REC001-REC099)
//
//	REC001 - Record not found
//
// # Sync Errors (SYNC001-SYNC099)
//
//	SYNC001 - Sync not configured
//	SYNC002 - Remote store unreachable or rejected the write
//
// # Rate Limiting (RATE001)
//
// # Default Error (ERR000)

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFormat = UserMessage{
		Message: "This file type is not supported",
		Action:  "Upload a .csv or .xlsx file",
		Code:    "FILE002",
	}
	msgParse = UserMessage{
		Message: "The file could not be read",
		Action:  "Check that the file is a valid CSV or Excel workbook with a header row",
		Code:    "FILE003",
	}
	msgEmpty = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Upload a file with a header row and at least one data row",
		Code:    "FILE005",
	}
	msgValidation = UserMessage{
		Message: "Some rows failed validation, nothing was imported",
		Action:  "Fix the listed rows and upload the file again, or use bulk import to skip them",
		Code:    "VAL001",
	}
	msgFieldInvalid = UserMessage{
		Message: "A field has an invalid value",
		Action:  "Correct the highlighted field and try again",
		Code:    "VAL002",
	}
	msgDuplicate = UserMessage{
		Message: "A lawyer with this email already exists",
		Action:  "Use a different email or update the existing profile",
		Code:    "VAL003",
	}
	msgNotFound = UserMessage{
		Message: "The requested lawyer profile does not exist",
		Action:  "Refresh the directory and try again",
		Code:    "REC001",
	}
	msgTooManyImports = UserMessage{
		Message: "Too many imports are running",
		Action:  "Please wait a moment and try again",
		Code:    "IMP001",
	}
	msgCancelled = UserMessage{
		Message: "The import was cancelled before it finished",
		Action:  "Start a new import when ready",
		Code:    "IMP002",
	}
	msgTimeout = UserMessage{
		Message: "The import timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "IMP003",
	}
	msgSyncDisabled = UserMessage{
		Message: "Remote sync is not configured",
		Action:  "Set SYNC_BACKEND to enable saving the directory",
		Code:    "SYNC001",
	}
)

// errorPattern maps a case-insensitive substring to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is consulted after typed matching fails. First match wins.
var errorPatterns = []errorPattern{
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the file into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be understood",
			Action:  "Check the submitted fields and try again",
			Code:    "VAL004",
		},
	},
	{
		pattern: "sync push",
		msg: UserMessage{
			Message: "The directory could not be saved to remote storage",
			Action:  "Your changes are kept in memory; try syncing again later",
			Code:    "SYNC002",
		},
	},
	{
		pattern: "sync pull",
		msg: UserMessage{
			Message: "The directory could not be loaded from remote storage",
			Action:  "Check the sync backend settings and try again",
			Code:    "SYNC002",
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

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error into a user-facing message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var formatErr *FormatError
	var parseErr *ParseError
	var validationErrs ValidationErrors
	var validationErr ValidationError
	var dupErr *DuplicateError

	switch {
	case errors.As(err, &formatErr):
		return msgFormat
	case errors.Is(err, ErrEmptyFile):
		return msgEmpty
	case errors.As(err, &parseErr):
		return msgParse
	case errors.As(err, &validationErrs):
		return msgValidation
	case errors.As(err, &dupErr):
		return msgDuplicate
	case errors.As(err, &validationErr):
		return msgFieldInvalid
	case errors.Is(err, ErrNotFound):
		return msgNotFound
	case errors.Is(err, ErrTooManyImports):
		return msgTooManyImports
	case errors.Is(err, ErrSyncDisabled):
		return msgSyncDisabled
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout
	case errors.Is(err, context.Canceled):
		return msgCancelled
	}

	lower := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(lower, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
