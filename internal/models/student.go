package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is a registration waiting in the staging collection.
type Student struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID string             `bson:"studentId" json:"studentId" validate:"required"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required"`
	Phone     string             `bson:"phone" json:"phone" validate:"required"`
	College   string             `bson:"college" json:"college" validate:"required"`
	Degree    string             `bson:"degree" json:"degree" validate:"required"`
	Year      string             `bson:"year" json:"year" validate:"required"`
	Stream    string             `bson:"stream,omitempty" json:"stream,omitempty"`
	BirthDate time.Time          `bson:"birthDate" json:"birthDate" validate:"required"`
	Password  string             `bson:"password" json:"-" validate:"required"` // bcrypt hash
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
