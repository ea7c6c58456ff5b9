package domain

import "errors"

// ErrMissingIdentity is an error thrown when the trusted identity header is absent
var ErrMissingIdentity = errors.New("missing identity header")

// ErrInvalidIdentity is an error thrown when the identity header cannot be parsed
var ErrInvalidIdentity = errors.New("invalid identity header")

// ErrLegacyDataMigrationRequired is an error thrown when a stored record still has the retired shape
var ErrLegacyDataMigrationRequired = errors.New("legacy media records found, run the metadata migration before browsing the library")

// ErrPollingTimeout is an error thrown when a video operation did not finish within the attempt budget
var ErrPollingTimeout = errors.New("video generation timed out")

// ErrNoValidResults is an error thrown when an operation finishes with neither results nor error
var ErrNoValidResults = errors.New("operation finished but no valid results were returned")

// ErrObjectNotFound is an error thrown when a storage object does not exist
var ErrObjectNotFound = errors.New("object not found")

// ErrMediaNotFound is an error thrown when a media record does not exist for the requester
var ErrMediaNotFound = errors.New("media not found")

// ErrBatchDeleteFailed is an error thrown when the metadata batch delete could not be committed
var ErrBatchDeleteFailed = errors.New("batch delete failed")

// ErrTooManyFilterValues is an error thrown when a filter selects more values than the store accepts
var ErrTooManyFilterValues = errors.New("too many filter values")

// ErrInvalidCursor is an error thrown when a resume cursor cannot be decoded
var ErrInvalidCursor = errors.New("invalid cursor")

// ErrInvalidForm is an error thrown when submitted form values do not match the form schema
var ErrInvalidForm = errors.New("invalid form")

// ErrInvalidStorageURI is an error thrown when an object storage uri is malformed
var ErrInvalidStorageURI = errors.New("invalid storage uri")

// ErrUpstreamUnavailable is an error thrown when the generation service rejects calls (breaker open, throttled)
var ErrUpstreamUnavailable = errors.New("generation service unavailable")

// ErrSessionNotFound is an error thrown when a generation or library session is unknown
var ErrSessionNotFound = errors.New("session not found")

// ErrMalformedMessage is an error thrown when a broker message can never be handled and must not be redelivered
var ErrMalformedMessage = errors.New("malformed message")
