package http

import (
	"fmt"
	"net/http"

	"report-srv/internal/report"
	"report-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Generate a report
// @Description Render a report synchronously. The job ends READY or FAILED before the response is written.
// @Tags Report
// @Accept json
// @Produce json
// @Param body body generateReq true "Report generation request"
// @Success 200 {object} generateResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/generate [post]
func (h *handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGenerateRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Generate: processGenerateRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.Generate(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Generate: usecase Generate failed (report_id=%s): %v", o.ReportID, err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newGenerateResp(o))
}

// @Summary Generate a report as the system principal
// @Description Internal route for trusted services, authenticated with X-Service-Key
// @Tags Internal
// @Accept json
// @Produce json
// @Param body body generateReq true "Report generation request"
// @Success 200 {object} generateResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /internal/reports/generate [post]
func (h *handler) GenerateInternal(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processGenerateInternalRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GenerateInternal: processGenerateInternalRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.GenerateInternal(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GenerateInternal: usecase GenerateInternal failed (report_id=%s): %v", o.ReportID, err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newGenerateResp(o))
}

// @Summary List reports
// @Description Admins see every job, other users only their own
// @Tags Report
// @Produce json
// @Param status query string false "GENERATING, READY or FAILED"
// @Param report_type_id query string false "Report type"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} listReportsResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/reports [get]
func (h *handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReportsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: processListReportsRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: usecase ListReports failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListReportsResp(o))
}

// @Summary Get report status and metadata
// @Tags Report
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {object} reportResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id} [get]
func (h *handler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processGetReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: processGetReportRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.GetReport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: usecase GetReport failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportResp(o))
}

// @Summary Download the latest file of a report
// @Description Streams the artifact bytes. Every successful call is logged.
// @Tags Report
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param report_id path string true "Report ID"
// @Success 200 {file} file
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/reports/{report_id}/download [get]
func (h *handler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processDownloadRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Download: processDownloadRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.Download(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Download: usecase Download failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	h.stream(c, o)
}

// @Summary Download a report file by id
// @Tags Report
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file_id path string true "File ID"
// @Success 200 {file} file
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 409 {object} response.Resp
// @Router /api/v1/report-files/{file_id}/download [get]
func (h *handler) DownloadByFileID(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processDownloadByFileRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadByFileID: processDownloadByFileRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.DownloadByFileID(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadByFileID: usecase DownloadByFileID failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	h.stream(c, o)
}

// @Summary List the files of a report
// @Tags Report
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {array} fileResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id}/files [get]
func (h *handler) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListFilesRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListFiles: processListFilesRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListFiles(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListFiles: usecase ListFiles failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newFilesResp(o))
}

// @Summary List the download logs of a report
// @Tags Report
// @Produce json
// @Param report_id path string true "Report ID"
// @Success 200 {array} downloadLogResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/reports/{report_id}/download-logs [get]
func (h *handler) ListJobDownloadLogs(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListJobDownloadLogsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListJobDownloadLogs: processListJobDownloadLogsRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListJobDownloadLogs(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListJobDownloadLogs: usecase ListJobDownloadLogs failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDownloadLogsResp(o))
}

// @Summary List the download logs of a file
// @Tags Report
// @Produce json
// @Param file_id path string true "File ID"
// @Success 200 {array} downloadLogResp
// @Failure 403 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Router /api/v1/report-files/{file_id}/download-logs [get]
func (h *handler) ListFileDownloadLogs(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListFileDownloadLogsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListFileDownloadLogs: processListFileDownloadLogsRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListFileDownloadLogs(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListFileDownloadLogs: usecase ListFileDownloadLogs failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newDownloadLogsResp(o))
}

// @Summary List the report types the caller may request
// @Tags Report
// @Produce json
// @Success 200 {array} reportTypeResp
// @Failure 401 {object} response.Resp
// @Router /api/v1/report-types [get]
func (h *handler) ListTypes(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.requireScope(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListTypes(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListTypes: usecase ListTypes failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newReportTypesResp(o))
}

// @Summary List report schedules
// @Tags Report
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} listSchedulesResp
// @Failure 403 {object} response.Resp
// @Router /api/v1/report-schedules [get]
func (h *handler) ListSchedules(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListSchedulesRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListSchedules: processListSchedulesRequest failed: %v", err)
		response.Error(c, err)
		return
	}

	o, err := h.uc.ListSchedules(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListSchedules: usecase ListSchedules failed: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListSchedulesResp(o))
}

// stream writes the artifact and closes its reader.
func (h *handler) stream(c *gin.Context, o report.DownloadOutput) {
	defer o.Reader.Close()

	c.DataFromReader(http.StatusOK, o.Size, o.ContentType, o.Reader, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", o.FileName),
		"X-Report-File-Id":    o.FileID,
	})
}
