package http

import (
	"errors"
	"net/http"

	"report-srv/internal/report"
	pkgErrors "report-srv/pkg/errors"
)

var (
	errWrongBody          = pkgErrors.NewHTTPError(http.StatusBadRequest, "Wrong body")
	errInvalidRequest     = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid report request")
	errInvalidReportType  = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid report type")
	errInvalidFormat      = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid output format")
	errFormatMismatch     = pkgErrors.NewHTTPError(http.StatusBadRequest, "Format does not match the report type")
	errDepartmentRequired = pkgErrors.NewHTTPError(http.StatusBadRequest, "Department is required for DEPT scope")
	errInvalidPeriod      = pkgErrors.NewHTTPError(http.StatusBadRequest, "Period must be YYYY-MM")

	errUnauthenticated = pkgErrors.NewHTTPError(http.StatusUnauthorized, "Authentication required")

	errAdminOnlyReport = pkgErrors.NewHTTPError(http.StatusForbidden, "Report type is restricted to administrators")
	errNotOwner        = pkgErrors.NewHTTPError(http.StatusForbidden, "Report belongs to another user")
	errAdminRequired   = pkgErrors.NewHTTPError(http.StatusForbidden, "Administrator role required")

	errReportNotFound   = pkgErrors.NewHTTPError(http.StatusNotFound, "Report not found")
	errFileNotFound     = pkgErrors.NewHTTPError(http.StatusNotFound, "Report file not found")
	errArtifactMissing  = pkgErrors.NewHTTPError(http.StatusNotFound, "Report file is missing from storage")
	errScheduleNotFound = pkgErrors.NewHTTPError(http.StatusNotFound, "Report schedule not found")

	errReportGenerating = pkgErrors.NewHTTPError(http.StatusConflict, "Report is still generating")
	errReportFailed     = pkgErrors.NewHTTPError(http.StatusConflict, "Report generation failed, request a new report")

	errGenerationFailed = pkgErrors.NewHTTPError(http.StatusInternalServerError, "Report generation failed")
	errDownloadFailed   = pkgErrors.NewHTTPError(http.StatusInternalServerError, "Report download failed")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrInvalidRequest):
		return errInvalidRequest
	case errors.Is(err, report.ErrInvalidReportType):
		return errInvalidReportType
	case errors.Is(err, report.ErrInvalidFormat):
		return errInvalidFormat
	case errors.Is(err, report.ErrFormatMismatch):
		return errFormatMismatch
	case errors.Is(err, report.ErrDepartmentRequired):
		return errDepartmentRequired
	case errors.Is(err, report.ErrInvalidPeriod):
		return errInvalidPeriod
	case errors.Is(err, report.ErrUnauthenticated):
		return errUnauthenticated
	case errors.Is(err, report.ErrAdminOnlyReport):
		return errAdminOnlyReport
	case errors.Is(err, report.ErrNotOwner):
		return errNotOwner
	case errors.Is(err, report.ErrAdminRequired):
		return errAdminRequired
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrFileNotFound):
		return errFileNotFound
	case errors.Is(err, report.ErrArtifactMissing):
		return errArtifactMissing
	case errors.Is(err, report.ErrScheduleNotFound):
		return errScheduleNotFound
	case errors.Is(err, report.ErrReportGenerating):
		return errReportGenerating
	case errors.Is(err, report.ErrReportFailed):
		return errReportFailed
	case errors.Is(err, report.ErrGenerationFailed):
		return errGenerationFailed
	case errors.Is(err, report.ErrDownloadFailed):
		return errDownloadFailed
	default:
		panic(err)
	}
}
