package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusforms/internal/models"
)

type ContactStore interface {
	Create(ctx context.Context, entry *models.ContactEntry) error
	List(ctx context.Context) ([]models.ContactEntry, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.ContactEntry, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.ContactEntry, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type StudentStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	Insert(ctx context.Context, student *models.Student) error
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	Insert(ctx context.Context, admin *models.Admin) error
}

type ProductStore interface {
	Create(ctx context.Context, product *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}
