package ingest

import "errors"

var (
	ErrMissingColumn = errors.New("csv feed is missing a required column")
	ErrBadRecord     = errors.New("csv record cannot be parsed")
	ErrReadingFeed   = errors.New("csv feed cannot be read")
)
