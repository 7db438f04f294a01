// Package handler provides HTTP handlers for the resume service.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/biz"
	"github.com/Anurag02012004/ai-resume-project/internal/resume/store"
)

// queryTimeout caps how long one answer request may take end to end.
const queryTimeout = 60 * time.Second

// ResumeHandler handles resume HTTP requests.
type ResumeHandler struct {
	service biz.Service
	profile store.ProfileStore
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(service biz.Service, profile store.ProfileStore) *ResumeHandler {
	return &ResumeHandler{
		service: service,
		profile: profile,
	}
}

// SuccessResponse is a standard success response.
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Health reports service liveness.
func (h *ResumeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "ok"})
}

// Profile returns the full profile snapshot.
func (h *ResumeHandler) Profile(c *gin.Context) {
	snapshot, err := h.profile.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: snapshot})
}

// Projects lists all projects.
func (h *ResumeHandler) Projects(c *gin.Context) {
	projects, err := h.profile.Projects(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: projects})
}

// Experiences lists all work experience entries.
func (h *ResumeHandler) Experiences(c *gin.Context) {
	experiences, err := h.profile.Experiences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: experiences})
}

// Skills lists all skills.
func (h *ResumeHandler) Skills(c *gin.Context) {
	skills, err := h.profile.Skills(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: skills})
}

// Education lists all education entries.
func (h *ResumeHandler) Education(c *gin.Context) {
	education, err := h.profile.Education(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: education})
}

// Certificates lists all certificates.
func (h *ResumeHandler) Certificates(c *gin.Context) {
	certificates, err := h.profile.Certificates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: certificates})
}

// Query answers a natural-language question about the profile.
func (h *ResumeHandler) Query(c *gin.Context) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), queryTimeout)
	defer cancel()

	result, err := h.service.Query(ctx, req.Query)
	if err != nil {
		if errors.Is(err, biz.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
			return
		}
		if ctx.Err() == context.DeadlineExceeded {
			c.JSON(http.StatusRequestTimeout, ErrorResponse{
				Code:    408,
				Message: "Query timeout: the request took too long to process. Please try again or simplify your question.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: result})
}

// Sync pushes the profile into the vector index. The body is optional; an
// empty body runs an incremental sync.
func (h *ResumeHandler) Sync(c *gin.Context) {
	var req model.SyncRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Code: 400, Message: err.Error()})
			return
		}
	}

	report, err := h.service.Sync(c.Request.Context(), biz.SyncOptions{Rebuild: req.Rebuild})
	if err != nil {
		// The report still carries the progress made before the failure.
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error(), Data: report})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: report})
}

// Stats returns index and cache statistics.
func (h *ResumeHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Code: 0, Message: "success", Data: stats})
}
