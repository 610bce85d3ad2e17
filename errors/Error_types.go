package errors

import "strconv"

// ERR is the numeric class of an *Error. Codes are grouped in ranges of ten so
// that GetErrorCategory can bucket them.
type ERR int32

const (
	ERR_UNKNOWN          ERR = 0
	ERR_INVALID_ARGUMENT ERR = 1
	ERR_NOT_FOUND        ERR = 3
	ERR_PROCESSING       ERR = 4
	ERR_CONFIGURATION    ERR = 5
	ERR_CONTEXT_CANCELED ERR = 7

	// block errors 10-19
	ERR_BLOCK_INVALID ERR = 11

	// address errors 70-79
	ERR_ADDRESS_INVALID  ERR = 70
	ERR_ADDRESS_CHECKSUM ERR = 71
	ERR_ADDRESS_PREFIX   ERR = 72

	// state errors 100-109
	ERR_STATE_INITIALIZATION ERR = 100
	ERR_INVALID_STATE        ERR = 101

	// network errors 110-119
	ERR_NETWORK_ERROR              ERR = 110
	ERR_NETWORK_TIMEOUT            ERR = 111
	ERR_NETWORK_CONNECTION_REFUSED ERR = 112
	ERR_NETWORK_INVALID_RESPONSE   ERR = 113
	ERR_NETWORK_MAGIC_MISMATCH     ERR = 115
	ERR_INVALID_IP                 ERR = 116
)

var ERR_name = map[int32]string{
	0:   "UNKNOWN",
	1:   "INVALID_ARGUMENT",
	3:   "NOT_FOUND",
	4:   "PROCESSING",
	5:   "CONFIGURATION",
	7:   "CONTEXT_CANCELED",
	11:  "BLOCK_INVALID",
	70:  "ADDRESS_INVALID",
	71:  "ADDRESS_CHECKSUM",
	72:  "ADDRESS_PREFIX",
	100: "STATE_INITIALIZATION",
	101: "INVALID_STATE",
	110: "NETWORK_ERROR",
	111: "NETWORK_TIMEOUT",
	112: "NETWORK_CONNECTION_REFUSED",
	113: "NETWORK_INVALID_RESPONSE",
	115: "NETWORK_MAGIC_MISMATCH",
	116: "INVALID_IP",
}

var ERR_value = func() map[string]int32 {
	m := make(map[string]int32, len(ERR_name))
	for k, v := range ERR_name {
		m[v] = k
	}

	return m
}()

// Enum returns the symbolic name of the code, or the empty string when unknown.
func (x ERR) Enum() string {
	return ERR_name[int32(x)]
}

func (x ERR) String() string {
	if name, ok := ERR_name[int32(x)]; ok {
		return name
	}

	return "ERR_" + strconv.Itoa(int(x))
}

var (
	ErrUnknown                  = New(ERR_UNKNOWN, "unknown error")
	ErrInvalidArgument          = New(ERR_INVALID_ARGUMENT, "invalid argument")
	ErrNotFound                 = New(ERR_NOT_FOUND, "not found")
	ErrProcessing               = New(ERR_PROCESSING, "error processing")
	ErrConfiguration            = New(ERR_CONFIGURATION, "configuration error")
	ErrContextCanceled          = New(ERR_CONTEXT_CANCELED, "context canceled")
	ErrBlockInvalid             = New(ERR_BLOCK_INVALID, "block invalid")
	ErrAddressInvalid           = New(ERR_ADDRESS_INVALID, "address invalid")
	ErrAddressChecksum          = New(ERR_ADDRESS_CHECKSUM, "address checksum mismatch")
	ErrAddressPrefix            = New(ERR_ADDRESS_PREFIX, "address prefix unknown")
	ErrStateInitialization      = New(ERR_STATE_INITIALIZATION, "state not initialized")
	ErrInvalidState             = New(ERR_INVALID_STATE, "invalid state")
	ErrNetwork                  = New(ERR_NETWORK_ERROR, "network error")
	ErrNetworkTimeout           = New(ERR_NETWORK_TIMEOUT, "network timeout")
	ErrNetworkConnectionRefused = New(ERR_NETWORK_CONNECTION_REFUSED, "network connection refused")
	ErrNetworkInvalidResponse   = New(ERR_NETWORK_INVALID_RESPONSE, "network invalid response")
	ErrNetworkMagicMismatch     = New(ERR_NETWORK_MAGIC_MISMATCH, "network magic mismatch")
	ErrInvalidIP                = New(ERR_INVALID_IP, "invalid ip")
)

// errors initialization functions

func NewInvalidArgumentError(message string, params ...interface{}) *Error {
	return New(ERR_INVALID_ARGUMENT, message, params...)
}
func NewNotFoundError(message string, params ...interface{}) *Error {
	return New(ERR_NOT_FOUND, message, params...)
}
func NewProcessingError(message string, params ...interface{}) *Error {
	return New(ERR_PROCESSING, message, params...)
}
func NewConfigurationError(message string, params ...interface{}) *Error {
	return New(ERR_CONFIGURATION, message, params...)
}
func NewContextCanceledError(message string, params ...interface{}) *Error {
	return New(ERR_CONTEXT_CANCELED, message, params...)
}
func NewBlockInvalidError(message string, params ...interface{}) *Error {
	return New(ERR_BLOCK_INVALID, message, params...)
}
func NewAddressInvalidError(message string, params ...interface{}) *Error {
	return New(ERR_ADDRESS_INVALID, message, params...)
}
func NewAddressChecksumError(message string, params ...interface{}) *Error {
	return New(ERR_ADDRESS_CHECKSUM, message, params...)
}
func NewAddressPrefixError(message string, params ...interface{}) *Error {
	return New(ERR_ADDRESS_PREFIX, message, params...)
}
func NewStateInitializationError(message string, params ...interface{}) *Error {
	return New(ERR_STATE_INITIALIZATION, message, params...)
}
func NewInvalidStateError(message string, params ...interface{}) *Error {
	return New(ERR_INVALID_STATE, message, params...)
}
func NewNetworkError(message string, params ...interface{}) *Error {
	return New(ERR_NETWORK_ERROR, message, params...)
}
func NewNetworkTimeoutError(message string, params ...interface{}) *Error {
	return New(ERR_NETWORK_TIMEOUT, message, params...)
}
func NewNetworkConnectionRefusedError(message string, params ...interface{}) *Error {
	return New(ERR_NETWORK_CONNECTION_REFUSED, message, params...)
}
func NewNetworkInvalidResponseError(message string, params ...interface{}) *Error {
	return New(ERR_NETWORK_INVALID_RESPONSE, message, params...)
}
func NewNetworkMagicMismatchError(message string, params ...interface{}) *Error {
	return New(ERR_NETWORK_MAGIC_MISMATCH, message, params...)
}
func NewInvalidIPError(message string, params ...interface{}) *Error {
	return New(ERR_INVALID_IP, message, params...)
}
