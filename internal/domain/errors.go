package domain

type ErrorCode string

const (
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeAlreadyMember ErrorCode = "ALREADY_MEMBER"
	ErrorCodeNotMember     ErrorCode = "NOT_MEMBER"
	ErrorCodeTeamExists    ErrorCode = "TEAM_EXISTS"
	ErrorCodeStore         ErrorCode = "STORE_ERROR"
	ErrorCodeFormAbandoned ErrorCode = "FORM_ABANDONED"
	ErrorCodeWorkflowState ErrorCode = "WORKFLOW_STATE"
	ErrorCodeValidation    ErrorCode = "VALIDATION"
)

type DomainError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	return e.Message
}
