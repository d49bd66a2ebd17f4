package domain

import "errors"

var (
	ErrDataSource       = errors.New("data source error")
	ErrEmptyBatch       = errors.New("round batch is empty")
	ErrMalformedPayload = errors.New("malformed round payload")
	ErrNoHistory        = errors.New("no history data")
)
