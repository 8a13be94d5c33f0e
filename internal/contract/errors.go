package contract

import "errors"

var (
	// ErrMissingCurrency is returned when Decode is called without a
	// settlement currency. The shortcode alone never carries it.
	ErrMissingCurrency = errors.New("contract: currency is required")

	// ErrMissingField is returned by Encode when a required field is
	// absent; the wrapped message names the field.
	ErrMissingField = errors.New("contract: missing required field")

	// ErrUnknownContractType is returned on direct construction with a
	// type code the type table does not know. Decoding never returns it;
	// unknown types decode to the legacy placeholder instead.
	ErrUnknownContractType = errors.New("contract: unknown contract type")

	// ErrUnknownCategory is returned when a contract type references a
	// category missing from the category table.
	ErrUnknownCategory = errors.New("contract: unknown contract category")

	// ErrInvalidLifetime is returned when date_start is after date_expiry.
	ErrInvalidLifetime = errors.New("contract: date_start is after date_expiry")
)
