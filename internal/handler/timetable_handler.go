package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/models"
	"github.com/noah-isme/timetable-api/internal/service"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type classSessionStore interface {
	Get(ctx context.Context, id string) (*models.ClassSession, error)
	Create(ctx context.Context, req service.ClassSessionRequest) (*models.ClassSession, error)
	Replace(ctx context.Context, id string, req service.ClassSessionRequest) (*models.ClassSession, error)
	Update(ctx context.Context, id string, patch service.ClassSessionPatch) (*models.ClassSession, error)
	Delete(ctx context.Context, id string) error
}

type timetableQuerier interface {
	Query(ctx context.Context, q service.TimetableQuery) ([]models.ClassSession, error)
	Daily(ctx context.Context, q service.TimetableQuery) ([]models.ClassSession, error)
	Weekly(ctx context.Context, q service.TimetableQuery) ([]models.ClassSession, error)
	Export(ctx context.Context, q service.TimetableQuery, format string) (*service.ExportFile, error)
}

// TimetableHandler exposes class session CRUD and the timetable views.
type TimetableHandler struct {
	store classSessionStore
	views timetableQuerier
}

// NewTimetableHandler constructs a TimetableHandler.
func NewTimetableHandler(store classSessionStore, views timetableQuerier) *TimetableHandler {
	return &TimetableHandler{store: store, views: views}
}

// Register mounts the timetable routes. guard runs before every mutating route.
func (h *TimetableHandler) Register(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	timetable := rg.Group("/timetable")
	timetable.GET("/", h.List)
	timetable.GET("/daily/", h.Daily)
	timetable.GET("/weekly/", h.Weekly)
	timetable.GET("/export/", h.Export)
	timetable.GET("/:id/", h.Get)

	write := timetable.Group("", guard...)
	write.POST("/", h.Create)
	write.PUT("/:id/", h.Replace)
	write.PATCH("/:id/", h.Update)
	write.DELETE("/:id/", h.Delete)
}

// List godoc
// @Summary List class sessions
// @Description Sessions ordered Monday first, then by start time. Filters are exact; day is case-insensitive.
// @Tags Timetable
// @Produce json
// @Param day query string false "Day code (MON..SUN)"
// @Param department query string false "Department"
// @Param year query string false "Year"
// @Success 200 {array} models.ClassSession
// @Router /timetable/ [get]
func (h *TimetableHandler) List(c *gin.Context) {
	h.view(c, h.views.Query)
}

// Daily godoc
// @Summary Today's class sessions
// @Tags Timetable
// @Produce json
// @Param department query string false "Department"
// @Param year query string false "Year"
// @Success 200 {array} models.ClassSession
// @Router /timetable/daily/ [get]
func (h *TimetableHandler) Daily(c *gin.Context) {
	h.view(c, h.views.Daily)
}

// Weekly godoc
// @Summary The whole week of class sessions
// @Tags Timetable
// @Produce json
// @Param department query string false "Department"
// @Param year query string false "Year"
// @Success 200 {array} models.ClassSession
// @Router /timetable/weekly/ [get]
func (h *TimetableHandler) Weekly(c *gin.Context) {
	h.view(c, h.views.Weekly)
}

func (h *TimetableHandler) view(c *gin.Context, fetch func(context.Context, service.TimetableQuery) ([]models.ClassSession, error)) {
	var q service.TimetableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	sessions, err := fetch(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sessions)
}

// Export godoc
// @Summary Export the timetable
// @Description Renders the filtered timetable as CSV (default) or PDF.
// @Tags Timetable
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf"
// @Param day query string false "Day code (MON..SUN)"
// @Param department query string false "Department"
// @Param year query string false "Year"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /timetable/export/ [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	var q service.TimetableQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	file, err := h.views.Export(c.Request.Context(), q, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}

// Get godoc
// @Summary Get a class session
// @Tags Timetable
// @Produce json
// @Param id path string true "Class session ID"
// @Success 200 {object} models.ClassSession
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id}/ [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	session, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Create godoc
// @Summary Create a class session
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.ClassSessionRequest true "Class session"
// @Success 201 {object} models.ClassSession
// @Failure 400 {object} response.ErrorBody
// @Router /timetable/ [post]
func (h *TimetableHandler) Create(c *gin.Context) {
	var req service.ClassSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Replace godoc
// @Summary Replace a class session
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path string true "Class session ID"
// @Param payload body service.ClassSessionRequest true "Class session"
// @Success 200 {object} models.ClassSession
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id}/ [put]
func (h *TimetableHandler) Replace(c *gin.Context) {
	var req service.ClassSessionRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.store.Replace(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Update godoc
// @Summary Partially update a class session
// @Tags Timetable
// @Accept json
// @Produce json
// @Param id path string true "Class session ID"
// @Param payload body service.ClassSessionPatch true "Fields to change"
// @Success 200 {object} models.ClassSession
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id}/ [patch]
func (h *TimetableHandler) Update(c *gin.Context) {
	var patch service.ClassSessionPatch
	if !bindJSON(c, &patch) {
		return
	}
	session, err := h.store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, session)
}

// Delete godoc
// @Summary Delete a class session
// @Tags Timetable
// @Param id path string true "Class session ID"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Router /timetable/{id}/ [delete]
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, appErrors.Validation("malformed request body", map[string]string{"detail": err.Error()}))
		return false
	}
	return true
}
