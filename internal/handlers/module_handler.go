package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/asadnakade/mini-lms/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ModuleService is the interface that wraps methods for module operations
type ModuleService interface {
	// CreateModule creates a module under a course and returns its ID
	CreateModule(ctx context.Context, courseID int64, req *models.CreateModuleRequest) (int64, error)
	// GetModule retrieves a module with its lessons
	GetModule(ctx context.Context, id int64) (*models.Module, error)
	// GetModulesByCourse retrieves a course's modules in catalog order
	GetModulesByCourse(ctx context.Context, courseID int64) ([]models.Module, error)
	// UpdateModule updates a module (partial update)
	UpdateModule(ctx context.Context, id int64, req *models.UpdateModuleRequest) error
	// DeleteModule deletes a module with its lessons
	DeleteModule(ctx context.Context, id int64) error
}

// ModuleHandler handles HTTP requests for module operations
type ModuleHandler struct {
	BaseHandler
	service ModuleService
}

// NewModuleHandler creates a new module handler
func NewModuleHandler(svc ModuleService, logger *zap.Logger) *ModuleHandler {
	return &ModuleHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all module handler routes
func (h *ModuleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses/{courseId}/modules", func(r chi.Router) {
		r.Post("/", h.CreateModule)
		r.Get("/", h.GetModulesByCourse)
	})
	r.Route("/modules", func(r chi.Router) {
		r.Get("/{id}", h.GetModule)
		r.Patch("/{id}", h.UpdateModule)
		r.Delete("/{id}", h.DeleteModule)
	})
}

// CreateModule handles POST /courses/{courseId}/modules
// @Summary Create a module
// @Description Create a new module under a course
// @Tags modules
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param request body models.CreateModuleRequest true "Module creation request"
// @Success 201 {object} map[string]any "Module created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId}/modules [post]
func (h *ModuleHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var req models.CreateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moduleID, err := h.service.CreateModule(r.Context(), courseID, &req)
	if err != nil {
		h.Logger.Error("failed to create module", zap.Error(err), zap.Int64("course_id", courseID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      moduleID,
		"message": "module created successfully",
	})
}

// GetModulesByCourse handles GET /courses/{courseId}/modules
// @Summary Get modules of a course
// @Description Get a course's modules in catalog order
// @Tags modules
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.Module "List of modules"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{courseId}/modules [get]
func (h *ModuleHandler) GetModulesByCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	modules, err := h.service.GetModulesByCourse(r.Context(), courseID)
	if err != nil {
		h.Logger.Error("failed to get modules", zap.Error(err), zap.Int64("course_id", courseID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, modules)
}

// GetModule handles GET /modules/{id}
// @Summary Get a module
// @Description Get a module with its ordered lessons
// @Tags modules
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} models.Module "Module with lessons"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id} [get]
func (h *ModuleHandler) GetModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	module, err := h.service.GetModule(r.Context(), moduleID)
	if err != nil {
		h.Logger.Error("failed to get module", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, module)
}

// UpdateModule handles PATCH /modules/{id}
// @Summary Update a module
// @Description Update a module (partial update)
// @Tags modules
// @Accept json
// @Param id path int true "Module ID"
// @Param request body models.UpdateModuleRequest true "Module update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id} [patch]
func (h *ModuleHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	var req models.UpdateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateModule(r.Context(), moduleID, &req); err != nil {
		h.Logger.Error("failed to update module", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteModule handles DELETE /modules/{id}
// @Summary Delete a module
// @Description Delete a module together with its lessons
// @Tags modules
// @Param id path int true "Module ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{id} [delete]
func (h *ModuleHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	if err := h.service.DeleteModule(r.Context(), moduleID); err != nil {
		h.Logger.Error("failed to delete module", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
