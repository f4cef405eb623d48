package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Input validation errors (100-199). These fail a run before any
	// simulation step has executed.
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeEmptyBars            ErrorCode = 102
	ErrCodeTooFewBars           ErrorCode = 103
	ErrCodeSeriesLengthMismatch ErrorCode = 104
	ErrCodeNonPositiveCapital   ErrorCode = 105
	ErrCodeInvalidPeriod        ErrorCode = 106
	ErrCodeInvalidThreshold     ErrorCode = 107
	ErrCodeInvalidStdDev        ErrorCode = 108

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300
	ErrCodeInsufficientData     ErrorCode = 301

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyConfigError   ErrorCode = 401
	ErrCodeStrategyNotPrepared   ErrorCode = 402
	ErrCodeVersionMismatch       ErrorCode = 403
	ErrCodeStrategyAlreadyExists ErrorCode = 404

	// Backtest errors (500-599)
	ErrCodeBacktestNoStrategy  ErrorCode = 500
	ErrCodeBacktestNoBars      ErrorCode = 501
	ErrCodeBacktestConfigError ErrorCode = 502
	ErrCodeResultWriteFailed   ErrorCode = 503
)
