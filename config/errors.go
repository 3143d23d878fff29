package config

import "errors"

// ErrInvalidConfig indicates a setting that could not be parsed or is out of
// range. It is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrHelp is returned by Load when -h/--help was given.
var ErrHelp = errors.New("help requested")
