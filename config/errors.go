package config

import (
	"fmt"
	"strings"
)

// UnsupportedFileFormatError is returned for definition files with an unknown extension.
type UnsupportedFileFormatError struct {
	Path string
}

func (err UnsupportedFileFormatError) Error() string {
	return fmt.Sprintf("unsupported graph definition file %q: expected one of %s", err.Path, strings.Join(SupportedExtensions, ", "))
}

// NoGraphFilesError is returned when no definition file was given.
type NoGraphFilesError struct{}

func (err NoGraphFilesError) Error() string {
	return "no graph definition files were specified"
}

// DecodeFileError wraps a failure to decode the file at Path.
type DecodeFileError struct {
	Err  error
	Path string
}

func (err DecodeFileError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", err.Path, err.Err)
}

func (err DecodeFileError) Unwrap() error {
	return err.Err
}
