package docstore

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"clouddocs/internal/model"
)

// Kind classifies store failures so callers can branch on them without
// string-matching error text.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindNotAuthenticated Kind = "not_authenticated"
	KindIndexRequired    Kind = "index_required"
	KindNetwork          Kind = "network_error"
	KindNotFound         Kind = "not_found"
	KindNotAuthorized    Kind = "not_authorized"
	KindPermissionDenied Kind = "permission_denied"
	KindCancelled        Kind = "cancelled"
	KindMalformedRecord  Kind = "malformed_record"
	KindPartialDelete    Kind = "partial_delete_failure"
)

// Error is the typed failure surfaced by the store and the collection layer.
// RemediationURL is set only for KindIndexRequired and carries the backend's
// create-index link verbatim.
type Error struct {
	Kind           Kind
	Message        string
	RemediationURL string
	Err            error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a typed error with no underlying cause.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a typed error around an underlying cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from any error in the chain, or KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// RemediationURLOf extracts the remediation URL from an index-required error,
// or "" when none is attached.
func RemediationURLOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.RemediationURL
	}
	return ""
}

var remediationURLPattern = regexp.MustCompile(`https://[^\s"']+`)

// ClassifyListError converts a raw list-query failure into a typed Error.
//
// A backend message containing "requires an index" becomes KindIndexRequired
// and the first https URL in the message is preserved unchanged as the
// remediation link. Context cancellation maps to KindCancelled, malformed rows
// to KindMalformedRecord, and anything else to KindNetwork, the taxonomy the
// list operation is allowed to fail with.
func ClassifyListError(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return WrapError(KindCancelled, "list documents interrupted", err)
	}
	if errors.Is(err, model.ErrMalformedRecord) {
		return WrapError(KindMalformedRecord, "list documents returned an invalid record", err)
	}
	if msg := err.Error(); strings.Contains(msg, "requires an index") {
		e := WrapError(KindIndexRequired, "query requires a backend index", err)
		e.RemediationURL = remediationURLPattern.FindString(msg)
		return e
	}
	return WrapError(KindNetwork, "list documents failed", err)
}
