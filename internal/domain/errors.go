package domain

import "errors"

var (
	// ErrConfigParse marks a malformed or invalid configuration document.
	// It is fatal: the run stops before any file is scanned.
	ErrConfigParse = errors.New("invalid configuration")

	// ErrUnsupportedFormat is returned for an unknown report format.
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// ErrUnknownPreset is returned for an unknown --style preset.
	ErrUnknownPreset = errors.New("unknown style preset")

	// ErrNoTarget is returned when a target path does not exist or is filtered out.
	ErrNoTarget = errors.New("no analyzable target")
)
