// Package utils contains decorators that every transaction passes through
// regardless of its message: logging, panic recovery, atomic state changes
// and action tagging.
package utils
