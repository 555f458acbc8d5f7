// Package apperrors defines the user-facing error taxonomy for analysis
// requests and the classification of raw provider errors into it.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies the class of failure surfaced to the caller. The HTTP
// adapter maps each category to a transport status.
type Category string

const (
	CategoryInvalidInput   Category = "invalid_input"
	CategoryAuthentication Category = "authentication_error"
	CategoryRateLimited    Category = "rate_limited"
	CategoryContextTooLarge Category = "context_too_large"
	CategoryTimeout        Category = "timeout"
	CategoryProviderServer Category = "provider_server_error"
	CategoryNetwork        Category = "network_error"
	CategoryPreprocessing  Category = "preprocessing_error"
	CategoryUnknown        Category = "unknown_error"
)

// Error is a classified analysis error with a stable, user-actionable message.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a classified error with the given category and message.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Wrap creates a classified error preserving the underlying cause.
func Wrap(category Category, message string, cause error) *Error {
	return &Error{Category: category, Message: message, Cause: cause}
}

// CategoryOf extracts the category from an error, or CategoryUnknown if the
// error is not a classified *Error.
func CategoryOf(err error) Category {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Category
	}
	return CategoryUnknown
}

// Guidance messages per category. These are the stable strings callers see;
// keep them actionable.
const (
	msgAuthentication = "Invalid API key. Please check your provider API key."
	msgRateLimited    = "Too many requests. Please wait a moment and try again."
	msgContextTooLarge = "The dataset is too large for the provider's token limits. " +
		"Please try one of the following:\n" +
		"1. Use a more specific query that focuses on fewer columns\n" +
		"2. Reduce your dataset size before uploading\n" +
		"3. Try analyzing a subset of your data\n" +
		"4. Break your analysis into multiple smaller queries"
	msgTimeout        = "The request timed out. Please try again with a smaller dataset or a simpler query."
	msgProviderServer = "The provider's server encountered an error. Please try again later."
	msgNetwork        = "Network error while connecting to the provider. Please check your internet connection."
	msgPreprocessing  = "Error during data preprocessing. " +
		"Please try one of the following:\n" +
		"1. Simplify your dataset structure\n" +
		"2. Ensure your data is in a standard format\n" +
		"3. Try a more specific query"
)

// classifierRule pairs a category with the keywords that select it. Rules are
// evaluated in taxonomy priority order; the first keyword hit wins.
type classifierRule struct {
	category Category
	message  string
	keywords []string
}

var classifierRules = []classifierRule{
	{CategoryAuthentication, msgAuthentication, []string{"api key", "authentication", "unauthorized", "401", "auth"}},
	{CategoryRateLimited, msgRateLimited, []string{"rate limit", "too many requests", "429"}},
	{CategoryContextTooLarge, msgContextTooLarge, []string{"maximum context length", "context length", "token limit", "context_length_exceeded"}},
	{CategoryTimeout, msgTimeout, []string{"timeout", "timed out", "deadline exceeded"}},
	{CategoryProviderServer, msgProviderServer, []string{"500", "502", "503", "504", "5xx", "server"}},
	{CategoryNetwork, msgNetwork, []string{"network", "connection"}},
	{CategoryPreprocessing, msgPreprocessing, []string{"preprocessing"}},
}

// Classify categorizes an arbitrary error into the taxonomy by matching
// keywords against its message, case-insensitively, in priority order.
// Already-classified errors pass through unchanged.
//
// Matching on stringified errors is fragile but deliberate: the provider
// client reports failures as opaque API errors, and its status text is the
// only classification signal available across OpenAI-compatible backends.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	lower := strings.ToLower(err.Error())
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return Wrap(rule.category, rule.message, err)
			}
		}
	}

	return Wrap(CategoryUnknown, fmt.Sprintf("Error analyzing data: %v", err), err)
}
