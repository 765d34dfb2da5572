package record

import (
	"fmt"
	"time"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Identifiable is implemented by pointers to record types. It gives the store
// access to the identity and audit-timestamp fields of a record without
// knowing its concrete shape.
type Identifiable interface {
	// GetID returns the record id. Id 0 is reserved and means "not stored".
	GetID() int
	// SetID assigns the record id. Only called by the store during Add.
	SetID(id int)
	// Touch stamps the audit timestamps. On creation both the created and
	// updated fields are set (where the record has them), on update only
	// the updated field. Records without timestamp fields implement this
	// as a partial or full no-op.
	Touch(now time.Time, created bool)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCIOError:
		errorCode = "IOError"
	case RetCLockError:
		errorCode = "LockError"
	case RetCEncodingError:
		errorCode = "EncodingError"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("RecordStoreError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new record store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Operation executed successfully.
	RetCIOError                      // 1: Backing file could not be opened, read or written.
	RetCLockError                    // 2: Advisory lock could not be acquired or released.
	RetCEncodingError                // 3: On-disk content could not be encoded or decoded.
)
