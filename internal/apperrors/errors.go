package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRateUnavailable indicates that no exchange rate (exact or prior-dated)
// could be resolved for a currency. It is recovered per-expense during
// aggregation and never aborts a whole analytics request.
var ErrRateUnavailable = errors.New("exchange rate unavailable")

// ErrStorageUnavailable indicates that listing expenses failed or timed out.
// It aborts the request.
var ErrStorageUnavailable = errors.New("expense storage unavailable")

// ErrRecognitionFailed indicates that the OCR backend failed or timed out.
// This is a transport failure, not a parse failure; parse failures degrade to
// absent draft fields instead.
var ErrRecognitionFailed = errors.New("text recognition failed")
