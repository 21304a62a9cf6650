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

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// CreateLesson creates a lesson under a module and returns its ID
	CreateLesson(ctx context.Context, moduleID int64, req *models.CreateLessonRequest) (int64, error)
	// GetLesson retrieves a lesson by ID
	GetLesson(ctx context.Context, id int64) (*models.Lesson, error)
	// GetLessonsByModule retrieves a module's lessons in catalog order,
	// optionally filtered by type
	GetLessonsByModule(ctx context.Context, moduleID int64, lessonType *models.LessonType) ([]models.Lesson, error)
	// UpdateLesson updates a lesson (partial update)
	UpdateLesson(ctx context.Context, id int64, req *models.UpdateLessonRequest) error
	// DeleteLesson deletes a lesson
	DeleteLesson(ctx context.Context, id int64) error
	// ReorderLessons assigns order indexes 1..n to the listed lessons
	ReorderLessons(ctx context.Context, moduleID int64, lessonIDs []int64) error
}

// LessonHandler handles HTTP requests for lesson operations
type LessonHandler struct {
	BaseHandler
	service LessonService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(svc LessonService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router) {
	r.Route("/modules/{moduleId}/lessons", func(r chi.Router) {
		r.Post("/", h.CreateLesson)
		r.Get("/", h.GetLessonsByModule)
		r.Put("/reorder", h.ReorderLessons)
	})
	r.Route("/lessons", func(r chi.Router) {
		r.Get("/{id}", h.GetLesson)
		r.Patch("/{id}", h.UpdateLesson)
		r.Delete("/{id}", h.DeleteLesson)
	})
}

// CreateLesson handles POST /modules/{moduleId}/lessons
// @Summary Create a lesson
// @Description Create a new lesson under a module; content is validated against the lesson type
// @Tags lessons
// @Accept json
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created successfully"
// @Failure 400 {object} map[string]string "Invalid request body or content"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{moduleId}/lessons [post]
func (h *LessonHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	var req models.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lessonID, err := h.service.CreateLesson(r.Context(), moduleID, &req)
	if err != nil {
		h.Logger.Error("failed to create lesson", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      lessonID,
		"message": "lesson created successfully",
	})
}

// GetLessonsByModule handles GET /modules/{moduleId}/lessons
// @Summary Get lessons of a module
// @Description Get a module's lessons in catalog order, optionally filtered by type
// @Tags lessons
// @Produce json
// @Param moduleId path int true "Module ID"
// @Param type query string false "Lesson type (TEXT, VIDEO, IMAGE, PDF)"
// @Success 200 {array} models.Lesson "List of lessons"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{moduleId}/lessons [get]
func (h *LessonHandler) GetLessonsByModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	var lessonType *models.LessonType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		t := models.LessonType(typeStr)
		lessonType = &t
	}

	lessons, err := h.service.GetLessonsByModule(r.Context(), moduleID, lessonType)
	if err != nil {
		h.Logger.Error("failed to get lessons", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, lessons)
}

// GetLesson handles GET /lessons/{id}
// @Summary Get a lesson
// @Description Get a lesson by ID
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.Lesson "Lesson"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/{id} [get]
func (h *LessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), lessonID)
	if err != nil {
		h.Logger.Error("failed to get lesson", zap.Error(err), zap.Int64("lesson_id", lessonID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// UpdateLesson handles PATCH /lessons/{id}
// @Summary Update a lesson
// @Description Update a lesson (partial update); content is re-validated when type or content changes
// @Tags lessons
// @Accept json
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or content"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/{id} [patch]
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req models.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateLesson(r.Context(), lessonID, &req); err != nil {
		h.Logger.Error("failed to update lesson", zap.Error(err), zap.Int64("lesson_id", lessonID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson; progress records for the lesson are kept
// @Tags lessons
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/{id} [delete]
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	if err := h.service.DeleteLesson(r.Context(), lessonID); err != nil {
		h.Logger.Error("failed to delete lesson", zap.Error(err), zap.Int64("lesson_id", lessonID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderLessons handles PUT /modules/{moduleId}/lessons/reorder
// @Summary Reorder lessons
// @Description Assign order indexes 1..n to the listed lessons in list order; fails when a lesson belongs to a different module
// @Tags lessons
// @Accept json
// @Param moduleId path int true "Module ID"
// @Param request body models.ReorderLessonsRequest true "Ordered lesson IDs"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request or lesson membership"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /modules/{moduleId}/lessons/reorder [put]
func (h *LessonHandler) ReorderLessons(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	var req models.ReorderLessonsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.LessonIDs) == 0 {
		h.RespondError(w, http.StatusBadRequest, "lessonIds is required")
		return
	}

	if err := h.service.ReorderLessons(r.Context(), moduleID, req.LessonIDs); err != nil {
		h.Logger.Error("failed to reorder lessons", zap.Error(err), zap.Int64("module_id", moduleID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
