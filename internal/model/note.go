package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note represents a note document owned by exactly one user.
type Note struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Subject   string             `json:"subject" bson:"subject"`
	UserID    primitive.ObjectID `json:"userID" bson:"userID"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"`
}
