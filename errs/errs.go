// Package errs defines the structured error type used across emptier.
//
// Errors fall into three kinds. Connection errors abort a connect attempt,
// validation errors abort an action before anything is submitted, and
// submission errors are recorded against a single asset without stopping
// its siblings.
package errs

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess    = 0
	ExitGeneral    = 1
	ExitInput      = 2
	ExitAuth       = 3
	ExitNotFound   = 4
	ExitSubmission = 5
)

// Kind classifies an error by how the caller should react to it.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnection
	KindValidation
	KindSubmission
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindValidation:
		return "validation"
	case KindSubmission:
		return "submission"
	default:
		return "unknown"
	}
}

// Error is the structured error type.
type Error struct {
	Code       string
	Message    string
	Kind       Kind
	Details    map[string]string
	Suggestion string
	Cause      error
	ExitCode   int
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code, so wrapped copies still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Connection errors.
var (
	ErrProviderUnavailable = &Error{
		Code:     "PROVIDER_UNAVAILABLE",
		Message:  "no wallet provider available",
		Kind:     KindConnection,
		ExitCode: ExitNotFound,
	}

	ErrConnectRejected = &Error{
		Code:     "CONNECT_REJECTED",
		Message:  "wallet connection was rejected",
		Kind:     KindConnection,
		ExitCode: ExitAuth,
	}

	ErrNetworkSwitch = &Error{
		Code:     "NETWORK_SWITCH_FAILED",
		Message:  "could not switch the provider to the requested network",
		Kind:     KindConnection,
		ExitCode: ExitGeneral,
	}

	ErrRPCUnavailable = &Error{
		Code:     "RPC_UNAVAILABLE",
		Message:  "chain RPC endpoint unreachable",
		Kind:     KindConnection,
		ExitCode: ExitGeneral,
	}

	ErrNotConnected = &Error{
		Code:     "NOT_CONNECTED",
		Message:  "wallet is not connected",
		Kind:     KindConnection,
		ExitCode: ExitInput,
	}
)

// Validation errors.
var (
	ErrInvalidDestination = &Error{
		Code:     "INVALID_DESTINATION",
		Message:  "invalid destination address",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}

	ErrNoTokensSelected = &Error{
		Code:     "NO_TOKENS_SELECTED",
		Message:  "no tokens selected",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}

	ErrNothingToTransfer = &Error{
		Code:     "NOTHING_TO_TRANSFER",
		Message:  "balance does not cover the transfer fee",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}

	ErrUnknownAsset = &Error{
		Code:     "UNKNOWN_ASSET",
		Message:  "asset is not among the current holdings",
		Kind:     KindValidation,
		ExitCode: ExitNotFound,
	}

	ErrUnknownNetwork = &Error{
		Code:     "UNKNOWN_NETWORK",
		Message:  "unknown network",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}

	ErrInvalidFee = &Error{
		Code:     "INVALID_FEE",
		Message:  "invalid fee override",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}

	ErrInvalidArgument = &Error{
		Code:     "INVALID_ARGUMENT",
		Message:  "invalid argument",
		Kind:     KindValidation,
		ExitCode: ExitInput,
	}
)

// Submission errors.
var (
	ErrTxRejected = &Error{
		Code:     "TX_REJECTED",
		Message:  "transaction rejected",
		Kind:     KindSubmission,
		ExitCode: ExitSubmission,
	}

	ErrTxFailed = &Error{
		Code:     "TX_FAILED",
		Message:  "transaction failed on chain",
		Kind:     KindSubmission,
		ExitCode: ExitSubmission,
	}

	ErrConfirmTimeout = &Error{
		Code:     "CONFIRM_TIMEOUT",
		Message:  "timed out waiting for confirmation",
		Kind:     KindSubmission,
		ExitCode: ExitSubmission,
	}
)

// Indexer errors.
var (
	ErrIndexerUnavailable = &Error{
		Code:     "INDEXER_UNAVAILABLE",
		Message:  "token indexer request failed",
		ExitCode: ExitGeneral,
	}

	ErrMissingAPIKey = &Error{
		Code:       "MISSING_API_KEY",
		Message:    "token indexer API key is not configured",
		Suggestion: "Set EMPTIER_INDEXER_API_KEY or indexer.api_key in the config file",
		ExitCode:   ExitInput,
	}
)

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps err with a formatted message, keeping the code and kind of any Error inside it.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var e *Error
	if errors.As(err, &e) {
		// the cause prints the inner message and details
		return &Error{
			Code:       e.Code,
			Message:    msg,
			Kind:       e.Kind,
			Suggestion: e.Suggestion,
			Cause:      err,
			ExitCode:   e.ExitCode,
		}
	}

	return &Error{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// Because attaches cause to a sentinel, e.g. errs.Because(errs.ErrTxRejected, err).
func Because(sentinel *Error, cause error) error {
	out := *sentinel
	out.Cause = cause
	return &out
}

// WithDetails returns a copy of err carrying details.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		out := *e
		out.Details = details
		return &out
	}

	return &Error{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion returns a copy of err carrying a suggestion for the user.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		out := *e
		out.Suggestion = suggestion
		return &out
	}

	return &Error{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var e *Error
	if errors.As(err, &e) {
		return e.ExitCode
	}
	return ExitGeneral
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// SuggestionOf returns the first suggestion found in the chain of err.
func SuggestionOf(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Suggestion != "" {
			return e.Suggestion
		}
		err = e.Cause
	}
	return ""
}

// Code returns the code of err.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "GENERAL_ERROR"
}
