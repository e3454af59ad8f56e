package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Validation failures are always recoverable locally: the entry is rejected
// before any write happens.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStateConflict indicates an operation that is illegal in the resource's
// current lifecycle state (posting into a closed period, double-closing a
// period, voiding a non-posted journal). Rejected with no side effects.
var ErrStateConflict = errors.New("operation conflicts with resource state")

// ErrConsistency indicates a derived-state invariant violation (trial balance
// debit/credit mismatch, assets != liabilities + equity). This implies a
// latent bug rather than bad caller input, so it is surfaced distinctly and
// never silently corrected.
var ErrConsistency = errors.New("ledger consistency violation")

// ErrFormatOverflow indicates a value too wide for its fixed-width output
// field (NACHA amounts, check numbers). The file is rejected before any bytes
// are emitted; partial files are never written.
var ErrFormatOverflow = errors.New("value overflows fixed-width field")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
