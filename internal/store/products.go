package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusforms/internal/models"
)

type Products struct {
	coll *mongo.Collection
}

func NewProducts(db *mongo.Database) *Products {
	return &Products{coll: db.Collection(ProductsCollection)}
}

func (s *Products) Create(ctx context.Context, product *models.Product) error {
	if err := checkDocument(product); err != nil {
		return err
	}
	product.ID = primitive.NewObjectID()
	_, err := s.coll.InsertOne(ctx, product)
	return translate(err)
}

func (s *Products) List(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Products) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// Update merges set into the product. Fields absent from set, the image
// included, keep their stored values.
func (s *Products) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	var product models.Product
	err := s.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&product)
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}
