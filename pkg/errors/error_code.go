package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter      ErrorCode = 100
	ErrCodeInvalidConfiguration  ErrorCode = 101
	ErrCodeInsufficientData      ErrorCode = 106
	ErrCodeInvalidType           ErrorCode = 107
	ErrCodeInvalidPeriod         ErrorCode = 108
	ErrCodeDuplicateName         ErrorCode = 109
	ErrCodeVersionMismatch       ErrorCode = 110
	ErrCodeInvalidMultiplier     ErrorCode = 111
	ErrCodeInvalidThreshold      ErrorCode = 112
	ErrCodeMissingInputReference ErrorCode = 113
	ErrCodeUnknownExchange       ErrorCode = 114
	ErrCodeUnknownTimeframe      ErrorCode = 115
	ErrCodeMissingParameter      ErrorCode = 116

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodePersistFailed         ErrorCode = 203
	ErrCodeRunNotFound           ErrorCode = 204
	ErrCodeStorageInitFailed     ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeUnknownIndicatorKind   ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Input and model errors (400-499)
	ErrCodeInputCalculation ErrorCode = 400
	ErrCodeUnknownModelKind ErrorCode = 401
	ErrCodeModelNotFound    ErrorCode = 402

	// Backtest errors (600-699)
	ErrCodeBacktestInitFailed  ErrorCode = 601
	ErrCodeBacktestConfigError ErrorCode = 602
	ErrCodeDataSourceNotSet    ErrorCode = 603
	ErrCodeBacktestCancelled   ErrorCode = 604
	ErrCodeCallbackFailed      ErrorCode = 605

	// Market data errors (700-799)
	ErrCodeMarketDataFetch  ErrorCode = 700
	ErrCodeMarketDataParse  ErrorCode = 701
	ErrCodeMarketDataWrite  ErrorCode = 702
	ErrCodeUnsupportedFetch ErrorCode = 703
)
