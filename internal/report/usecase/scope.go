package usecase

import (
	"strings"

	"report-srv/internal/model"
)

// resolveScope returns the effective data scope. Non-admins are always
// contained to their own data. Admins get what they ask for, and DEPT when the
// request is empty or unrecognized.
func resolveScope(isAdmin bool, requested string) model.DataScope {
	if !isAdmin {
		return model.DataScopeMy
	}

	switch model.DataScope(strings.ToUpper(strings.TrimSpace(requested))) {
	case model.DataScopeMy:
		return model.DataScopeMy
	case model.DataScopeDept:
		return model.DataScopeDept
	case model.DataScopeAll:
		return model.DataScopeAll
	default:
		return model.DataScopeDept
	}
}

// departmentSnapshot decides which department is recorded on the job.
// DEPT never falls back to the requester's own department.
func departmentSnapshot(scope model.DataScope, sc model.Scope, requested string) string {
	switch scope {
	case model.DataScopeDept:
		return strings.TrimSpace(requested)
	case model.DataScopeMy:
		return strings.TrimSpace(sc.Department)
	case model.DataScopeAll:
		return ""
	default:
		return ""
	}
}
