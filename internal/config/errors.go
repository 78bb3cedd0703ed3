package config

import (
	"errors"

	"github.com/nao1215/ytcomments/internal/model"
)

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
var (
	// ErrNoTarget is returned when no video identifier or list file is specified.
	ErrNoTarget = errors.New("no target specified: provide a video ID or URL, or use --list")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidParallel is returned when the parallelism is not positive.
	ErrInvalidParallel = errors.New("invalid parallel value: must be positive")

	// ErrInvalidMode is returned when the mode cannot be parsed.
	ErrInvalidMode = model.ErrInvalidMode

	// ErrInvalidFormat is returned when the output format is unknown.
	ErrInvalidFormat = errors.New("invalid format: use text, markdown or json")
)
