package errors

// ErrorCode identifies the category of an AppError in responses and logs
type ErrorCode string

const (
	ErrorCode_INTERNAL        ErrorCode = "INTERNAL"
	ErrorCode_UNAUTHENTICATED ErrorCode = "UNAUTHENTICATED"

	ErrorCode_INVALID_INPUT    ErrorCode = "INVALID_INPUT"
	ErrorCode_INVALID_STATE    ErrorCode = "INVALID_STATE"
	ErrorCode_NOT_AUTHORIZED   ErrorCode = "NOT_AUTHORIZED"
	ErrorCode_LOOKUP_FAILURE   ErrorCode = "LOOKUP_FAILURE"
	ErrorCode_DELIVERY_FAILURE ErrorCode = "DELIVERY_FAILURE"

	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = "DB_TRANSACTION_FAILED"
)

// String returns the code as a string
func (c ErrorCode) String() string {
	return string(c)
}
