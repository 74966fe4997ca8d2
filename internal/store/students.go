package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"campusforms/internal/models"
)

type Students struct {
	coll *mongo.Collection
}

func NewStudents(db *mongo.Database) *Students {
	return &Students{coll: db.Collection(StudentsCollection)}
}

func (s *Students) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&student); err != nil {
		return nil, translate(err)
	}
	return &student, nil
}

// Insert validates and stores a new student. A second insert with the same
// email fails with ErrDuplicate through the unique index.
func (s *Students) Insert(ctx context.Context, student *models.Student) error {
	if err := checkDocument(student); err != nil {
		return err
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	_, err := s.coll.InsertOne(ctx, student)
	return translate(err)
}
