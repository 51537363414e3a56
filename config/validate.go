package config

import (
	"errors"
	"slices"

	"github.com/ezrec/tinyturing/translate"
)

var f = translate.From

// Formats accepted for the format key.
var Formats = []string{"auto", "bb", "yaml", "star"}

var (
	ErrFormat   = errors.New(f("unknown machine format"))
	ErrMaxSteps = errors.New(f("max_steps must not be negative"))
)

// ErrValue indicates the key of an invalid value.
type ErrValue struct {
	Key   string
	Value any
	Err   error
}

func (err *ErrValue) Error() string {
	return f("%v: %s=%v", err.Err, err.Key, err.Value)
}

func (err *ErrValue) Unwrap() error {
	return err.Err
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return &ErrValue{Key: "format", Value: c.Format, Err: ErrFormat}
	}
	if c.MaxSteps < 0 {
		return &ErrValue{Key: "max_steps", Value: c.MaxSteps, Err: ErrMaxSteps}
	}
	return nil
}
