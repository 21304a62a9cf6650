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

// ProgressService is the interface that wraps methods for progress
// operations
type ProgressService interface {
	// UpdateLessonProgress updates a user's progress on a lesson
	UpdateLessonProgress(ctx context.Context, userID string, lessonID int64, req *models.UpdateLessonProgressRequest) (*models.LessonProgress, error)
	// GetModuleProgress computes a user's progress summary for a module
	GetModuleProgress(ctx context.Context, userID string, moduleID int64) (*models.ProgressResponse, error)
	// GetCourseProgress computes a user's progress summary for a course
	GetCourseProgress(ctx context.Context, userID string, courseID int64) (*models.ProgressResponse, error)
	// IsModuleCompleted reports whether the user completed every lesson of a module
	IsModuleCompleted(ctx context.Context, userID string, moduleID int64) (bool, error)
	// IsCourseCompleted reports whether the user completed every lesson of a course
	IsCourseCompleted(ctx context.Context, userID string, courseID int64) (bool, error)
}

// ProgressHandler handles HTTP requests for progress operations
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/progress/users/{userId}", func(r chi.Router) {
		r.Put("/lessons/{lessonId}", h.UpdateLessonProgress)
		r.Get("/modules/{moduleId}", h.GetModuleProgress)
		r.Get("/modules/{moduleId}/completed", h.IsModuleCompleted)
		r.Get("/courses/{courseId}", h.GetCourseProgress)
		r.Get("/courses/{courseId}/completed", h.IsCourseCompleted)
	})
}

// UpdateLessonProgress handles PUT /progress/users/{userId}/lessons/{lessonId}
// @Summary Update lesson progress
// @Description Mark a lesson completed/incomplete or record a completion percentage; the completed flag takes priority over the percentage
// @Tags progress
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param lessonId path int true "Lesson ID"
// @Param request body models.UpdateLessonProgressRequest true "Progress update request"
// @Success 200 {object} models.LessonProgress "Updated progress record"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /progress/users/{userId}/lessons/{lessonId} [put]
func (h *ProgressHandler) UpdateLessonProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	lessonID, err := strconv.ParseInt(chi.URLParam(r, "lessonId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson ID")
		return
	}

	var req models.UpdateLessonProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.service.UpdateLessonProgress(r.Context(), userID, lessonID, &req)
	if err != nil {
		h.Logger.Error("failed to update lesson progress",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("lesson_id", lessonID),
		)
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetModuleProgress handles GET /progress/users/{userId}/modules/{moduleId}
// @Summary Get module progress
// @Description Get a user's aggregated progress for a module with per-lesson details
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param moduleId path int true "Module ID"
// @Success 200 {object} models.ProgressResponse "Module progress summary"
// @Failure 404 {object} map[string]string "Module not found"
// @Router /progress/users/{userId}/modules/{moduleId} [get]
func (h *ProgressHandler) GetModuleProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	progress, err := h.service.GetModuleProgress(r.Context(), userID, moduleID)
	if err != nil {
		h.Logger.Error("failed to get module progress",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("module_id", moduleID),
		)
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// GetCourseProgress handles GET /progress/users/{userId}/courses/{courseId}
// @Summary Get course progress
// @Description Get a user's aggregated progress for a course with per-module summaries
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.ProgressResponse "Course progress summary"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /progress/users/{userId}/courses/{courseId} [get]
func (h *ProgressHandler) GetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	progress, err := h.service.GetCourseProgress(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to get course progress",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("course_id", courseID),
		)
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// IsModuleCompleted handles GET /progress/users/{userId}/modules/{moduleId}/completed
// @Summary Check module completion
// @Description Check whether a user has completed every lesson of a module
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param moduleId path int true "Module ID"
// @Success 200 {object} map[string]bool "Completion flag"
// @Router /progress/users/{userId}/modules/{moduleId}/completed [get]
func (h *ProgressHandler) IsModuleCompleted(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	moduleID, err := strconv.ParseInt(chi.URLParam(r, "moduleId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid module ID")
		return
	}

	completed, err := h.service.IsModuleCompleted(r.Context(), userID, moduleID)
	if err != nil {
		h.Logger.Error("failed to check module completion",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("module_id", moduleID),
		)
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

// IsCourseCompleted handles GET /progress/users/{userId}/courses/{courseId}/completed
// @Summary Check course completion
// @Description Check whether a user has completed every lesson of a course
// @Tags progress
// @Produce json
// @Param userId path string true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} map[string]bool "Completion flag"
// @Router /progress/users/{userId}/courses/{courseId}/completed [get]
func (h *ProgressHandler) IsCourseCompleted(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	completed, err := h.service.IsCourseCompleted(r.Context(), userID, courseID)
	if err != nil {
		h.Logger.Error("failed to check course completion",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int64("course_id", courseID),
		)
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}
