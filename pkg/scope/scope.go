package scope

import "report-srv/internal/model"

// NewScope maps verified token claims to the caller scope. Tokens without
// a user_id claim fall back to the subject.
func NewScope(payload Payload) model.Scope {
	userID := payload.UserID
	if userID == "" {
		userID = payload.Subject
	}

	return model.Scope{
		UserID:     userID,
		Username:   payload.Username,
		Role:       payload.Role,
		Department: payload.Department,
	}
}
