package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"exercise-tracker/internal/dates"
	"exercise-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler holds the service dependencies for the user-facing endpoints.
type UserHandler struct {
	userService service.UserService
	logService  service.LogService
	dates       *dates.Formatter

	// plainTextErrors selects the compatibility error mode: plain string
	// bodies with status 200, as the original service responded.
	plainTextErrors bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logService service.LogService, formatter *dates.Formatter, plainTextErrors bool) *UserHandler {
	return &UserHandler{
		userService:     userService,
		logService:      logService,
		dates:           formatter,
		plainTextErrors: plainTextErrors,
	}
}

// --- DTOs for API ---

// CreateUserRequest accepts form-encoded or JSON bodies.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

// CreateUserResponse echoes the created record.
type CreateUserResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// UserSummary is one element of the GET /api/users listing. The __v revision
// counter is included for format parity with the store's documents.
type UserSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Version  int32  `json:"__v"`
}

// LogExerciseRequest accepts form-encoded or JSON bodies. Duration arrives
// as a string (form-encoded clients cannot send anything else) and is parsed
// by hand.
type LogExerciseRequest struct {
	Description string `form:"description" json:"description"`
	Duration    string `form:"duration" json:"duration"`
	Date        string `form:"date" json:"date"`
}

// LogExerciseResponse reports the logged exercise against its owning user.
// The _id field is the user's id, not the exercise's.
type LogExerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// respondError writes an error in the configured mode: a plain-text 200 body
// for wire compatibility, or a JSON object with a real status code.
func (h *UserHandler) respondError(c *gin.Context, status int, message string) {
	if h.plainTextErrors {
		c.String(http.StatusOK, message)
		return
	}
	c.JSON(status, gin.H{"error": message})
}

func userNotFoundMessage(id string) string {
	return fmt.Sprintf("A user with an _id of %s was not found", id)
}

// --- Handler Methods ---

// CreateUser handles POST /api/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "username is required")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			h.respondError(c, http.StatusBadRequest, "username is required")
		case errors.Is(err, service.ErrUsernameTaken):
			h.respondError(c, http.StatusConflict, "This username is already taken")
		case errors.Is(err, service.ErrUsernameProfane):
			// Message preserved verbatim from the original service,
			// spelling included.
			h.respondError(c, http.StatusBadRequest, "Please choose an appropiate username")
		default:
			// Storage errors (including the length constraint) surface as
			// their own message.
			h.respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{
		ID:       user.ID.Hex(),
		Username: user.Username,
	})
}

// ListUsers handles GET /api/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]UserSummary, len(users))
	for i, u := range users {
		summaries[i] = UserSummary{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Version:  u.Version,
		}
	}

	c.JSON(http.StatusOK, summaries)
}

// LogExercise handles POST /api/users/:_id/exercises.
func (h *UserHandler) LogExercise(c *gin.Context) {
	idParam := c.Param("_id")
	if idParam == "" {
		h.respondError(c, http.StatusBadRequest, "An _id of a user is required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		h.respondError(c, http.StatusNotFound, userNotFoundMessage(idParam))
		return
	}

	var req LogExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, "description and duration are required")
		return
	}
	if req.Description == "" {
		h.respondError(c, http.StatusBadRequest, "description is required")
		return
	}
	if req.Duration == "" {
		h.respondError(c, http.StatusBadRequest, "duration is required")
		return
	}
	duration, err := strconv.Atoi(req.Duration)
	if err != nil || duration <= 0 {
		h.respondError(c, http.StatusBadRequest, "duration must be a positive whole number")
		return
	}

	user, exercise, err := h.userService.LogExercise(c.Request.Context(), userID, req.Description, duration, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			h.respondError(c, http.StatusNotFound, userNotFoundMessage(idParam))
		case errors.Is(err, service.ErrValidationFailed):
			h.respondError(c, http.StatusBadRequest, "description and duration are required")
		default:
			h.respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, LogExerciseResponse{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Date:        h.dates.Display(exercise.Date),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	})
}

// GetLogs handles GET /api/users/:_id/logs. Parameter presence is key
// presence in the query string, so "?from=" counts as a supplied (empty)
// bound.
func (h *UserHandler) GetLogs(c *gin.Context) {
	idParam := c.Param("_id")

	userID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		h.respondError(c, http.StatusNotFound, userNotFoundMessage(idParam))
		return
	}

	var query service.LogQuery
	if from, ok := c.GetQuery("from"); ok {
		query.From = &from
	}
	if to, ok := c.GetQuery("to"); ok {
		query.To = &to
	}
	if limit, ok := c.GetQuery("limit"); ok {
		query.Limit = &limit
	}

	result, err := h.logService.GetUserLog(c.Request.Context(), userID, query)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.respondError(c, http.StatusNotFound, userNotFoundMessage(idParam))
			return
		}
		h.respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
