package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user and the ordered list of exercises they
// have logged. Exercises is append-only; its order is insertion order.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Username  string               `bson:"username" json:"username"`
	Exercises []primitive.ObjectID `bson:"exercises" json:"exercises,omitempty"`

	// Version mirrors the store's revision counter (the "__v" field exposed
	// by GET /api/users). It is bumped whenever the exercise list changes.
	Version int32 `bson:"__v" json:"__v"`
}

// MaxUsernameLength is enforced by the persistence layer on Create.
const MaxUsernameLength = 20
