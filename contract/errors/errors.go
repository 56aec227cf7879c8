package errors

// Error codes for the aggregator contracts. Keep stable; used across packages and logs.
const (
	ErrCodeNotInitialized   = "eventbus.not_initialized"
	ErrCodeNotRegistered    = "eventbus.not_registered"
	ErrCodeKindExists       = "eventbus.kind_exists"
	ErrCodeKindMismatch     = "eventbus.kind_mismatch"
	ErrCodeKindUnresolved   = "eventbus.kind_unresolved"
	ErrCodeMethodUnresolved = "eventbus.method_unresolved"
	ErrCodeTargetMissing    = "eventbus.target_missing"
	ErrCodeHandlerFault     = "eventbus.handler_fault"
	ErrCodeAdapterClosed    = "eventbus.adapter_closed"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrNotInitialized   = Code(ErrCodeNotInitialized)
	ErrNotRegistered    = Code(ErrCodeNotRegistered)
	ErrKindExists       = Code(ErrCodeKindExists)
	ErrKindMismatch     = Code(ErrCodeKindMismatch)
	ErrKindUnresolved   = Code(ErrCodeKindUnresolved)
	ErrMethodUnresolved = Code(ErrCodeMethodUnresolved)
	ErrTargetMissing    = Code(ErrCodeTargetMissing)
	ErrHandlerFault     = Code(ErrCodeHandlerFault)
	ErrAdapterClosed    = Code(ErrCodeAdapterClosed)
)
