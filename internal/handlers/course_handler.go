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

// CourseService is the interface that wraps methods for course operations
type CourseService interface {
	// CreateCourse creates a new course and returns its ID
	CreateCourse(ctx context.Context, req *models.CreateCourseRequest) (int64, error)
	// GetCourse retrieves a course with its full module and lesson tree
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	// GetCoursesList retrieves courses with optional title search and pagination
	GetCoursesList(ctx context.Context, search string, page, count int) ([]models.Course, error)
	// UpdateCourse updates a course (partial update)
	UpdateCourse(ctx context.Context, id int64, req *models.UpdateCourseRequest) error
	// DeleteCourse deletes a course with its modules and lessons
	DeleteCourse(ctx context.Context, id int64) error
}

// CourseHandler handles HTTP requests for course operations
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Post("/", h.CreateCourse)
		r.Get("/", h.GetCoursesList)
		r.Get("/{id}", h.GetCourse)
		r.Patch("/{id}", h.UpdateCourse)
		r.Delete("/{id}", h.DeleteCourse)
	})
}

// CreateCourse handles POST /courses
// @Summary Create a course
// @Description Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} map[string]any "Course created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	courseID, err := h.service.CreateCourse(r.Context(), &req)
	if err != nil {
		h.Logger.Error("failed to create course", zap.Error(err))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      courseID,
		"message": "course created successfully",
	})
}

// GetCoursesList handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses with optional title search
// @Tags courses
// @Produce json
// @Param search query string false "Search by course title"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.Course "List of courses"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCoursesList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	count := 10
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		if c, err := strconv.Atoi(countStr); err == nil && c > 0 {
			count = c
		}
	}

	courses, err := h.service.GetCoursesList(r.Context(), search, page, count)
	if err != nil {
		h.Logger.Error("failed to get courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id}
// @Summary Get a course
// @Description Get a course with its full module and lesson tree
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course "Course with modules and lessons"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		h.Logger.Error("failed to get course", zap.Error(err), zap.Int64("course_id", courseID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	h.RespondJSON(w, http.StatusOK, course)
}

// UpdateCourse handles PATCH /courses/{id}
// @Summary Update a course
// @Description Update a course (partial update)
// @Tags courses
// @Accept json
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{id} [patch]
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateCourse(r.Context(), courseID, &req); err != nil {
		h.Logger.Error("failed to update course", zap.Error(err), zap.Int64("course_id", courseID))
		h.RespondServiceError(w, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /courses/{id}
// @Summary Delete a course
// @Description Delete a course together with its modules and lessons
// @Tags courses
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 404 {object} map[string]string "Course not found"
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid course ID")
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		h.Logger.Error("failed to delete course", zap.Error(err), zap.Int64("course_id", courseID))
		h.RespondServiceError(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
