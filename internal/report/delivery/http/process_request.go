package http

import (
	"report-srv/internal/model"
	"report-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func (h *handler) processGenerateRequest(c *gin.Context) (generateReq, model.Scope, error) {
	ctx := c.Request.Context()

	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processGenerateRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, errWrongBody
	}
	if err := req.validate(); err != nil {
		return req, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(ctx)
	if !sc.IsAuthenticated() {
		return req, model.Scope{}, errUnauthenticated
	}
	return req, sc, nil
}

func (h *handler) processGenerateInternalRequest(c *gin.Context) (generateReq, error) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processGenerateInternalRequest: ShouldBindJSON failed: %v", err)
		return req, errWrongBody
	}
	if err := req.validate(); err != nil {
		return req, err
	}
	return req, nil
}

func (h *handler) processGetReportRequest(c *gin.Context) (getReportReq, model.Scope, error) {
	req := getReportReq{
		ReportID: c.Param("report_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processListReportsRequest(c *gin.Context) (listReportsReq, model.Scope, error) {
	var req listReportsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processListReportsRequest: ShouldBindQuery failed: %v", err)
		return req, model.Scope{}, errInvalidRequest
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processDownloadRequest(c *gin.Context) (downloadReq, model.Scope, error) {
	req := downloadReq{
		ReportID: c.Param("report_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processDownloadByFileRequest(c *gin.Context) (downloadByFileReq, model.Scope, error) {
	req := downloadByFileReq{
		FileID: c.Param("file_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processListFilesRequest(c *gin.Context) (listFilesReq, model.Scope, error) {
	req := listFilesReq{
		ReportID: c.Param("report_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processListJobDownloadLogsRequest(c *gin.Context) (listJobDownloadLogsReq, model.Scope, error) {
	req := listJobDownloadLogsReq{
		ReportID: c.Param("report_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processListFileDownloadLogsRequest(c *gin.Context) (listFileDownloadLogsReq, model.Scope, error) {
	req := listFileDownloadLogsReq{
		FileID: c.Param("file_id"),
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

func (h *handler) processListSchedulesRequest(c *gin.Context) (listSchedulesReq, model.Scope, error) {
	var req listSchedulesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(c.Request.Context(), "report.delivery.http.processListSchedulesRequest: ShouldBindQuery failed: %v", err)
		return req, model.Scope{}, errInvalidRequest
	}

	sc, err := h.requireScope(c)
	return req, sc, err
}

// requireScope returns the caller set by the auth middleware.
func (h *handler) requireScope(c *gin.Context) (model.Scope, error) {
	sc := scope.GetScopeFromContext(c.Request.Context())
	if !sc.IsAuthenticated() {
		return model.Scope{}, errUnauthenticated
	}
	return sc, nil
}
