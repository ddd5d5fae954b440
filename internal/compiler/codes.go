package compiler

import "fmt"

// maxReportedErrors is the highest exit code Closure Compiler reports.
// Its exit code is the number of errors, capped at this value.
const maxReportedErrors = 0x7f

// ErrorCodes maps Closure Compiler exit codes to their descriptions
var ErrorCodes = map[int]string{
	0:                 "Success",
	1:                 "1 compile error",
	maxReportedErrors: "127 or more compile errors",
}

// IsSuccess returns true if the exit code indicates successful compilation
func IsSuccess(code int) bool {
	return code == 0
}

// GetErrorMessage returns the error message for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ErrorCodes[code]; ok {
		return msg
	}

	if code > 1 && code < maxReportedErrors {
		return fmt.Sprintf("%d compile errors", code)
	}

	return "Unknown error"
}
