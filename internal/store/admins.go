package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"campusforms/internal/models"
)

type Admins struct {
	coll *mongo.Collection
}

func NewAdmins(db *mongo.Database) *Admins {
	return &Admins{coll: db.Collection(AdminsCollection)}
}

func (s *Admins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (s *Admins) Insert(ctx context.Context, admin *models.Admin) error {
	if err := checkDocument(admin); err != nil {
		return err
	}
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	res, err := s.coll.InsertOne(ctx, admin)
	if err != nil {
		return translate(err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		admin.ID = id
	}
	return nil
}
