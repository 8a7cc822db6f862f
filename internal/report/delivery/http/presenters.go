package http

import (
	"encoding/json"
	"strings"
	"time"

	"report-srv/internal/model"
	"report-srv/internal/report"
	"report-srv/pkg/paginator"
	"report-srv/pkg/response"
)

const (
	dateLayout     = response.DateFormat
	dateTimeLayout = response.DateTimeFormat
)

type generateReq struct {
	ReportTypeID string             `json:"report_type_id" binding:"required"`
	Filters      generateFiltersReq `json:"filters"`
}

type generateFiltersReq struct {
	Format     string   `json:"format,omitempty"`
	DataScope  string   `json:"data_scope,omitempty"`
	Department string   `json:"department,omitempty"`
	Period     string   `json:"period,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

func (r generateReq) validate() error {
	if strings.TrimSpace(r.ReportTypeID) == "" {
		return errWrongBody
	}
	return nil
}

func (r generateReq) toInput() report.GenerateInput {
	return report.GenerateInput{
		ReportTypeID: strings.TrimSpace(r.ReportTypeID),
		Filters: report.Filters{
			Format:     r.Filters.Format,
			DataScope:  r.Filters.DataScope,
			Department: r.Filters.Department,
			Period:     r.Filters.Period,
			Categories: r.Filters.Categories,
		},
	}
}

type getReportReq struct {
	ReportID string
}

func (r getReportReq) toInput() report.GetReportInput {
	return report.GetReportInput{ReportID: r.ReportID}
}

type listReportsReq struct {
	Status       string `form:"status"`
	ReportTypeID string `form:"report_type_id"`
	paginator.PaginateQuery
}

func (r listReportsReq) toInput() report.ListReportsInput {
	return report.ListReportsInput{
		Status:       strings.TrimSpace(r.Status),
		ReportTypeID: strings.TrimSpace(r.ReportTypeID),
		Paginator:    r.PaginateQuery,
	}
}

type downloadReq struct {
	ReportID string
}

func (r downloadReq) toInput() report.DownloadInput {
	return report.DownloadInput{ReportID: r.ReportID}
}

type downloadByFileReq struct {
	FileID string
}

func (r downloadByFileReq) toInput() report.DownloadByFileInput {
	return report.DownloadByFileInput{FileID: r.FileID}
}

type listFilesReq struct {
	ReportID string
}

func (r listFilesReq) toInput() report.ListFilesInput {
	return report.ListFilesInput{ReportID: r.ReportID}
}

type listJobDownloadLogsReq struct {
	ReportID string
}

func (r listJobDownloadLogsReq) toInput() report.ListJobDownloadLogsInput {
	return report.ListJobDownloadLogsInput{ReportID: r.ReportID}
}

type listFileDownloadLogsReq struct {
	FileID string
}

func (r listFileDownloadLogsReq) toInput() report.ListFileDownloadLogsInput {
	return report.ListFileDownloadLogsInput{FileID: r.FileID}
}

type listSchedulesReq struct {
	paginator.PaginateQuery
}

func (r listSchedulesReq) toInput() report.ListSchedulesInput {
	return report.ListSchedulesInput{Paginator: r.PaginateQuery}
}

type generateResp struct {
	ReportID string `json:"report_id"`
	Status   string `json:"status"`
	FileName string `json:"file_name,omitempty"`
}

type reportResp struct {
	ID                 string   `json:"id"`
	RequestedBy        string   `json:"requested_by"`
	RoleSnapshot       string   `json:"role_snapshot,omitempty"`
	ReportTypeID       string   `json:"report_type_id"`
	Period             string   `json:"period,omitempty"`
	PeriodStart        *string  `json:"period_start,omitempty"`
	PeriodEnd          *string  `json:"period_end,omitempty"`
	DataScope          string   `json:"data_scope"`
	DepartmentSnapshot string   `json:"department_snapshot,omitempty"`
	Categories         []string `json:"categories"`
	OutputFormat       string   `json:"output_format"`
	Status             string   `json:"status"`
	ApprovedTotal      *int64   `json:"approved_total,omitempty"`
	ApprovedCount      *int64   `json:"approved_count,omitempty"`
	FileName           string   `json:"file_name,omitempty"`
	ErrorMessage       string   `json:"error_message,omitempty"`
	CompletedAt        *string  `json:"completed_at,omitempty"`
	CreatedAt          string   `json:"created_at"`
}

type listReportsResp struct {
	Reports   []reportResp                `json:"reports"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

type fileResp struct {
	ID        string `json:"id"`
	JobID     string `json:"job_id"`
	FileName  string `json:"file_name"`
	FileType  string `json:"file_type"`
	FileSize  int64  `json:"file_size"`
	Checksum  string `json:"checksum"`
	CreatedAt string `json:"created_at"`
}

type downloadLogResp struct {
	ID           string `json:"id"`
	FileID       string `json:"file_id"`
	JobID        string `json:"job_id"`
	DownloadedBy string `json:"downloaded_by"`
	DownloadedAt string `json:"downloaded_at"`
}

type reportTypeResp struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Format    string `json:"format"`
	AdminOnly bool   `json:"admin_only"`
}

type scheduleResp struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ReportTypeID string  `json:"report_type_id"`
	DataScope    string  `json:"data_scope"`
	OutputFormat string  `json:"output_format"`
	CronExpr     string  `json:"cron_expr"`
	IsEnabled    bool    `json:"is_enabled"`
	NextRunAt    *string `json:"next_run_at,omitempty"`
	LastRunAt    *string `json:"last_run_at,omitempty"`
	LastJobID    string  `json:"last_job_id,omitempty"`
	FailCount    int     `json:"fail_count"`
	LastError    string  `json:"last_error,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type listSchedulesResp struct {
	Schedules []scheduleResp              `json:"schedules"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h *handler) newGenerateResp(o report.GenerateOutput) generateResp {
	return generateResp{
		ReportID: o.ReportID,
		Status:   string(o.Status),
		FileName: o.FileName,
	}
}

func (h *handler) newReportResp(o report.ReportOutput) reportResp {
	resp := reportResp{
		ID:                 o.ID,
		RequestedBy:        o.RequestedBy,
		RoleSnapshot:       o.RoleSnapshot,
		ReportTypeID:       o.ReportTypeID,
		Period:             o.Period,
		PeriodStart:        formatTime(o.PeriodStart, dateLayout),
		PeriodEnd:          formatTime(o.PeriodEnd, dateLayout),
		DataScope:          string(o.DataScope),
		DepartmentSnapshot: o.DepartmentSnapshot,
		Categories:         []string{},
		OutputFormat:       string(o.OutputFormat),
		Status:             string(o.Status),
		ApprovedTotal:      o.ApprovedTotal,
		ApprovedCount:      o.ApprovedCount,
		FileName:           o.FileName,
		ErrorMessage:       o.ErrorMessage,
		CompletedAt:        formatTime(o.CompletedAt, dateTimeLayout),
		CreatedAt:          o.CreatedAt.Format(dateTimeLayout),
	}
	if len(o.Categories) > 0 {
		var categories []string
		if err := json.Unmarshal(o.Categories, &categories); err == nil && categories != nil {
			resp.Categories = categories
		}
	}
	return resp
}

func (h *handler) newListReportsResp(o report.ListReportsOutput) listReportsResp {
	reports := make([]reportResp, 0, len(o.Reports))
	for _, r := range o.Reports {
		reports = append(reports, h.newReportResp(r))
	}
	return listReportsResp{
		Reports:   reports,
		Paginator: o.Paginator.ToResponse(),
	}
}

func (h *handler) newFilesResp(o []report.FileOutput) []fileResp {
	out := make([]fileResp, 0, len(o))
	for _, f := range o {
		out = append(out, fileResp{
			ID:        f.ID,
			JobID:     f.JobID,
			FileName:  f.FileName,
			FileType:  string(f.FileType),
			FileSize:  f.FileSize,
			Checksum:  f.Checksum,
			CreatedAt: f.CreatedAt.Format(dateTimeLayout),
		})
	}
	return out
}

func (h *handler) newDownloadLogsResp(o []report.DownloadLogOutput) []downloadLogResp {
	out := make([]downloadLogResp, 0, len(o))
	for _, l := range o {
		out = append(out, downloadLogResp{
			ID:           l.ID,
			FileID:       l.FileID,
			JobID:        l.JobID,
			DownloadedBy: l.DownloadedBy,
			DownloadedAt: l.DownloadedAt.Format(dateTimeLayout),
		})
	}
	return out
}

func (h *handler) newReportTypesResp(o []report.ReportType) []reportTypeResp {
	out := make([]reportTypeResp, 0, len(o))
	for _, t := range o {
		out = append(out, reportTypeResp{
			ID:        t.ID,
			Label:     t.Label,
			Format:    string(t.Format),
			AdminOnly: t.AdminOnly,
		})
	}
	return out
}

func (h *handler) newListSchedulesResp(o report.ListSchedulesOutput) listSchedulesResp {
	schedules := make([]scheduleResp, 0, len(o.Schedules))
	for _, s := range o.Schedules {
		schedules = append(schedules, newScheduleResp(s))
	}
	return listSchedulesResp{
		Schedules: schedules,
		Paginator: o.Paginator.ToResponse(),
	}
}

func newScheduleResp(s model.ReportSchedule) scheduleResp {
	return scheduleResp{
		ID:           s.ID,
		Name:         s.Name,
		ReportTypeID: s.ReportTypeID,
		DataScope:    string(s.DataScope),
		OutputFormat: string(s.OutputFormat),
		CronExpr:     s.CronExpr,
		IsEnabled:    s.IsEnabled,
		NextRunAt:    formatTime(s.NextRunAt, dateTimeLayout),
		LastRunAt:    formatTime(s.LastRunAt, dateTimeLayout),
		LastJobID:    s.LastJobID,
		FailCount:    s.FailCount,
		LastError:    s.LastError,
		CreatedAt:    s.CreatedAt.Format(dateTimeLayout),
	}
}

func formatTime(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
