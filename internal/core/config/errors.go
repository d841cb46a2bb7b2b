package config

import "fmt"

// ErrUnknownKey is returned when getting or setting a config key sprout does not know
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown config key: %s", e.Key)
}

// ParseError is returned when the config file exists but cannot be parsed
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
