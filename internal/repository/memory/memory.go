// Package memory provides in-memory repository implementations for tests and
// local development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository stores users in memory.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*domain.User
	order []primitive.ObjectID
}

// NewUserRepository constructs an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[primitive.ObjectID]*domain.User),
	}
}

// Create implements repository.UserRepository. It mirrors the store-level
// constraints of the Mongo implementation: unique username, maximum length.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Username == "" {
		return primitive.NilObjectID, fmt.Errorf("username is required")
	}
	if len(user.Username) > domain.MaxUsernameLength {
		return primitive.NilObjectID, fmt.Errorf("username is longer than the maximum allowed length (%d)", domain.MaxUsernameLength)
	}
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	if user.Exercises == nil {
		user.Exercises = []primitive.ObjectID{}
	}
	clone := *user
	r.users[user.ID] = &clone
	r.order = append(r.order, user.ID)
	return user.ID, nil
}

// GetByID implements repository.UserRepository.
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// GetByUsername implements repository.UserRepository.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetAll implements repository.UserRepository, in creation order.
func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, *r.users[id])
	}
	return users, nil
}

// AddExercise implements repository.UserRepository.
func (r *UserRepository) AddExercise(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Exercises = append(user.Exercises, exerciseID)
	user.Version++
	return nil
}

// ExerciseRepository stores exercises in memory, preserving insertion order.
type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises []domain.Exercise
}

// NewExerciseRepository constructs an empty in-memory exercise repository.
func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{}
}

// Create implements repository.ExerciseRepository.
func (r *ExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if exercise.Description == "" || exercise.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, fmt.Errorf("exercise description and user ID are required")
	}

	exercise.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *exercise)
	return exercise.ID, nil
}

// GetByUserID implements repository.ExerciseRepository.
func (r *ExerciseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Exercise{}
	for _, ex := range r.exercises {
		if ex.UserID == userID {
			result = append(result, ex)
		}
	}
	return result, nil
}
