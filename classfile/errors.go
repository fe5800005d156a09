package classfile

import "fmt"

// Error describes a failure to decode class data. It records the byte
// offset at which decoding stopped so garbled input can be diagnosed.
type Error struct {
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("classfile: %s (offset %d)", e.Reason, e.Offset)
}

func errorf(offset int, format string, args ...any) *Error {
	return &Error{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
