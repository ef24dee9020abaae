package services

// Reason identifies which business rule rejected a request.
type Reason int

const (
	ReasonUserNotFound Reason = iota + 1
	ReasonEmptyUsername
	ReasonUsernameTaken
	ReasonEmailTaken
	ReasonInvalidEmail
	ReasonEmptyTitle
	ReasonTitleTooLong
	ReasonTaskNotFoundOrForbidden
	ReasonAlreadyCompleted
	ReasonCannotDeleteCompleted
)

var reasonCodes = map[Reason]string{
	ReasonUserNotFound:            "USER_NOT_FOUND",
	ReasonEmptyUsername:           "EMPTY_USERNAME",
	ReasonUsernameTaken:           "USERNAME_TAKEN",
	ReasonEmailTaken:              "EMAIL_TAKEN",
	ReasonInvalidEmail:            "INVALID_EMAIL",
	ReasonEmptyTitle:              "EMPTY_TITLE",
	ReasonTitleTooLong:            "TITLE_TOO_LONG",
	ReasonTaskNotFoundOrForbidden: "TASK_NOT_FOUND_OR_FORBIDDEN",
	ReasonAlreadyCompleted:        "ALREADY_COMPLETED",
	ReasonCannotDeleteCompleted:   "CANNOT_DELETE_COMPLETED",
}

// String returns the machine readable code of the reason
func (r Reason) String() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}
	return "UNKNOWN"
}

// ValidationError is the single error kind returned for business rule
// violations. Two ValidationErrors match under errors.Is when their reasons match.
type ValidationError struct {
	Reason  Reason
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Code returns the machine readable code of the reason
func (e *ValidationError) Code() string {
	return e.Reason.String()
}

// Is reports whether target is a ValidationError with the same reason
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

func newValidationError(reason Reason, message string) *ValidationError {
	return &ValidationError{Reason: reason, Message: message}
}

var (
	ErrUserNotFound            = newValidationError(ReasonUserNotFound, "User not found")
	ErrUsernameEmpty           = newValidationError(ReasonEmptyUsername, "Username cannot be empty")
	ErrUsernameTaken           = newValidationError(ReasonUsernameTaken, "Username already exists")
	ErrEmailTaken              = newValidationError(ReasonEmailTaken, "Email already exists")
	ErrInvalidEmail            = newValidationError(ReasonInvalidEmail, "Invalid email format")
	ErrTitleEmpty              = newValidationError(ReasonEmptyTitle, "Task title cannot be empty")
	ErrTitleTooLong            = newValidationError(ReasonTitleTooLong, "Task title must be under 100 characters")
	ErrTaskNotFoundOrForbidden = newValidationError(ReasonTaskNotFoundOrForbidden, "Task not found or you don't have permission")
	ErrTaskAlreadyCompleted    = newValidationError(ReasonAlreadyCompleted, "Task is already completed")
	ErrCannotDeleteCompleted   = newValidationError(ReasonCannotDeleteCompleted, "Cannot delete completed tasks")
)
