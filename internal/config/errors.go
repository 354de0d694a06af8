package config

import "encoding/json"

// Error codes for configuration loading, part of this repository's error
// taxonomy (SPEC_FULL.md §7: ErrConfigIO, ErrConfigParse,
// ErrCircularInheritance).
const (
	ErrConfigIO            = "ERR_CONFIG_IO"
	ErrConfigParse         = "ERR_CONFIG_PARSE"
	ErrCircularInheritance = "ERR_CIRCULAR_INHERITANCE"
)

// Error is a uniform error payload, grounded on the teacher's
// CLIError{Code, Message, Detail}+Wrap idiom (internal/core/errorfmt.go),
// generalized into this repository's own config-loading error codes.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// JSON renders the error as the same uniform JSON payload the CLI layer
// reports other tool-level failures in.
func (e Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap builds an Error with code, msg, and inner's message as Detail.
func Wrap(code, msg string, inner error) error {
	if inner == nil {
		return Error{Code: code, Message: msg}
	}
	return Error{Code: code, Message: msg, Detail: inner.Error()}
}
