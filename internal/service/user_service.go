package service

import (
	"context"
	"errors"
	"log"

	"exercise-tracker/internal/dates"
	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/moderation"
	"exercise-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrUsernameProfane  = errors.New("username rejected by moderation filter")
	ErrValidationFailed = errors.New("validation failed")
)

// UserService covers registration, listing and exercise logging.
type UserService interface {
	Register(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	// LogExercise records an exercise for a user. An empty date defaults to
	// today's date in the configured timezone. Returns the owning user and
	// the created exercise.
	LogExercise(ctx context.Context, userID primitive.ObjectID, description string, duration int, date string) (*domain.User, *domain.Exercise, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	filter       *moderation.Filter
	dates        *dates.Formatter
}

// NewUserService creates a new instance of userService.
func NewUserService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	filter *moderation.Filter,
	formatter *dates.Formatter,
) UserService {
	return &userService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		filter:       filter,
		dates:        formatter,
	}
}

// Register creates a user record for the given username. The uniqueness
// check is an exact string match against existing users; the length limit is
// left to the repository's own constraint.
func (s *userService) Register(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, ErrValidationFailed
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if s.filter.IsProfane(username) {
		return nil, ErrUsernameProfane
	}

	user := &domain.User{Username: username}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against a concurrent registration.
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	user.ID = id

	return user, nil
}

// ListUsers returns every registered user.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// LogExercise creates an exercise owned by the given user and appends its
// reference to the user's exercise list. A supplied date string is stored
// verbatim; only an absent date is defaulted.
func (s *userService) LogExercise(ctx context.Context, userID primitive.ObjectID, description string, duration int, date string) (*domain.User, *domain.Exercise, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if description == "" || duration <= 0 {
		return nil, nil, ErrValidationFailed
	}

	if date == "" {
		date = s.dates.Today()
	}

	exercise := &domain.Exercise{
		Description: description,
		Duration:    duration,
		Date:        date,
		UserID:      user.ID,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, nil, err
	}
	exercise.ID = exerciseID

	// Both writes happen at creation time and are never reconciled; a failed
	// append leaves the exercise record intact, matching the original
	// service's behavior.
	if err := s.userRepo.AddExercise(ctx, user.ID, exerciseID); err != nil {
		log.Printf("WARN: failed to append exercise %s to user %s: %v", exerciseID.Hex(), user.ID.Hex(), err)
	}

	return user, exercise, nil
}
