package model

import "errors"

var (
	// ErrMalformedValue reports a wire value that cannot be decoded into its
	// canonical in-memory form (bad decimal, bad hex, wrong length, failed
	// checksum). It marks a contract violation by the upstream node, not a
	// transport failure.
	ErrMalformedValue = errors.New("malformed value")

	// ErrMissingAliasPayload reports an alias whose discriminator claims a
	// variant but whose corresponding payload field is absent.
	ErrMissingAliasPayload = errors.New("missing alias payload")
)
