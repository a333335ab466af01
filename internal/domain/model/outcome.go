package model

// OutcomeKind classifies the result of one unban attempt. Every kind maps
// 1:1 to a fixed reply template.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeInvalidID
	OutcomePermissionDenied
	OutcomeUserNotFound
	OutcomeNotBanned
	OutcomeChatNotFound
	OutcomeTimeout
	OutcomeOtherError
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeSuccess:          "success",
	OutcomeInvalidID:        "invalid_id",
	OutcomePermissionDenied: "permission_denied",
	OutcomeUserNotFound:     "user_not_found",
	OutcomeNotBanned:        "not_banned",
	OutcomeChatNotFound:     "chat_not_found",
	OutcomeTimeout:          "timeout",
	OutcomeOtherError:       "other_error",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// Outcome is the classified result of an unban attempt. UserID carries the
// parsed identifier when parsing succeeded; Detail carries the (truncated)
// remote error message for OutcomeOtherError.
type Outcome struct {
	Kind   OutcomeKind
	UserID int64
	Detail string
}
