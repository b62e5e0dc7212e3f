package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTransport    = errors.New("upstream transport failure")
	ErrDecode       = errors.New("decode upstream response")
	ErrInvalidShape = errors.New("unexpected upstream response shape")
	ErrNoData       = errors.New("no data found")
	ErrExport       = errors.New("export dataset")
)

// Finer-grained upstream failures. Each still matches its parent kind with errors.Is.
var (
	ErrTimeout           = fmt.Errorf("%w: timed out waiting for response", ErrTransport)
	ErrEmptyResponse     = fmt.Errorf("%w: empty response body", ErrDecode)
	ErrMalformedResponse = fmt.Errorf("%w: malformed json", ErrDecode)
)
