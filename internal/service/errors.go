package service

import "errors"

// ErrUpstream marks failures of a hosted inference service (embedding, chat,
// vision). Controllers map it to a 503 instead of crashing the request.
var ErrUpstream = errors.New("inference service unavailable")

// ErrNoStructuredResult is returned when no parseable JSON object could be
// located in the vision model's output for a receipt.
var ErrNoStructuredResult = errors.New("could not locate a structured result in model output")
