package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidSignal        ErrorCode = 102
	ErrCodeInvalidDate          ErrorCode = 103

	// Data errors (200-299)
	ErrCodeNoDataFound           ErrorCode = 200
	ErrCodeMissingColumns        ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeDataSourceUnavailable ErrorCode = 203

	// Backtest errors (300-399)
	ErrCodeBacktestStateNil     ErrorCode = 300
	ErrCodeBacktestNoStrategy   ErrorCode = 301
	ErrCodeBacktestNoDatasource ErrorCode = 302
	ErrCodeBacktestNoResultsDir ErrorCode = 303
	ErrCodeBacktestNotRun       ErrorCode = 304

	// Strategy errors (400-499)
	ErrCodeStrategyConfigError  ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 401
	ErrCodeUnknownStrategy      ErrorCode = 402
)
