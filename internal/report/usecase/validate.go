package usecase

import (
	"strings"

	"report-srv/internal/model"
	"report-srv/internal/report"
)

// validateRequest resolves the report type and output format, and enforces
// admin-only types. It runs before any job row exists.
func (uc *implUseCase) validateRequest(sc model.Scope, input report.GenerateInput) (report.ReportType, model.OutputFormat, error) {
	if strings.TrimSpace(input.ReportTypeID) == "" {
		return report.ReportType{}, "", report.ErrInvalidReportType
	}

	rt, ok := uc.registry.Lookup(input.ReportTypeID)
	if !ok {
		return report.ReportType{}, "", report.ErrInvalidReportType
	}

	if rt.AdminOnly && !sc.IsAdmin() {
		return report.ReportType{}, "", report.ErrAdminOnlyReport
	}

	format, err := resolveFormat(rt, input.Filters.Format)
	if err != nil {
		return report.ReportType{}, "", err
	}

	return rt, format, nil
}

func resolveFormat(rt report.ReportType, requested string) (model.OutputFormat, error) {
	if strings.TrimSpace(requested) == "" {
		return rt.Format, nil
	}

	format, err := parseFormat(requested)
	if err != nil {
		return "", err
	}
	if format != rt.Format {
		return "", report.ErrFormatMismatch
	}
	return format, nil
}

func parseFormat(s string) (model.OutputFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PDF":
		return model.OutputFormatPDF, nil
	case "EXCEL", "XLSX":
		return model.OutputFormatExcel, nil
	default:
		return "", report.ErrInvalidFormat
	}
}
