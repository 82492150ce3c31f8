package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single logged activity. It is immutable after creation.
//
// Date is kept as the raw string that was submitted (or the defaulted
// "today" in storage layout). It is only parsed when rendered for a
// response, never on the way in.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date        string             `bson:"date" json:"date"`
	Duration    int                `bson:"duration" json:"duration"`
	Description string             `bson:"description" json:"description"`
	UserID      primitive.ObjectID `bson:"user" json:"user"`
}
