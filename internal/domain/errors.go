package domain

import "errors"

// Sentinel errors for fetching records
var (
	// ErrSourceUnreachable indicates the record endpoint could not be reached
	ErrSourceUnreachable = errors.New("record source is unreachable")

	// ErrUnexpectedStatus indicates the endpoint answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedPayload indicates the response body was not a record list
	ErrMalformedPayload = errors.New("malformed record payload")
)
