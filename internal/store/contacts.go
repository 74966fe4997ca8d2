package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusforms/internal/models"
)

type Contacts struct {
	coll *mongo.Collection
}

func NewContacts(db *mongo.Database) *Contacts {
	return &Contacts{coll: db.Collection(ContactsCollection)}
}

func (s *Contacts) Create(ctx context.Context, entry *models.ContactEntry) error {
	entry.ID = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, entry)
	return translate(err)
}

func (s *Contacts) List(ctx context.Context) ([]models.ContactEntry, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	entries := make([]models.ContactEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Contacts) Get(ctx context.Context, id primitive.ObjectID) (*models.ContactEntry, error) {
	var entry models.ContactEntry
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// Update applies set and returns the document as it is after the write.
func (s *Contacts) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.ContactEntry, error) {
	var entry models.ContactEntry
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&entry)
	if err != nil {
		return nil, translate(err)
	}
	return &entry, nil
}

// Delete succeeds whether or not the entry exists.
func (s *Contacts) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}
