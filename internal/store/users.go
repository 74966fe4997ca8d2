package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusforms/internal/models"
)

type Users struct {
	coll *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{coll: db.Collection(UsersCollection)}
}

// emailCollation matches emails regardless of case. Accounts in users are
// written elsewhere and keep the casing they were typed with.
var emailCollation = &options.Collation{Locale: "en", Strength: 2}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(emailCollation))
}

func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Users) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.User, error) {
	var user models.User
	if err := s.coll.FindOne(ctx, filter, opts...).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdatePassword overwrites the stored hash in place.
func (s *Users) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"password":  hash,
			"updatedAt": time.Now().UTC(),
		},
	})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
