package constants

const (
	// MaxTaskTitleLength is the maximum task title length in characters after trimming
	MaxTaskTitleLength = 100

	// ContextKeyUserID holds the acting user ID parsed from the request
	ContextKeyUserID = "user_id"
	// ContextKeyRequestID holds the request ID assigned by the request logger
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is the header used to propagate request IDs
	HeaderRequestID = "X-Request-ID"
)
