package models

import (
	"encoding/base64"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductImage is stored inline with the product document.
type ProductImage struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name" validate:"required"`
	Price     Number             `bson:"price"`
	Quantity  Number             `bson:"quantity"`
	Degree    string             `bson:"degree" validate:"required"`
	ClassYear string             `bson:"classYear" validate:"required"`
	Stream    string             `bson:"stream" validate:"required"`
	Image     *ProductImage      `bson:"image,omitempty"`
}

// ProductView is the JSON shape of a product, with the image inlined as a data URI.
type ProductView struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Price     Number             `json:"price"`
	Quantity  Number             `json:"quantity"`
	Degree    string             `json:"degree"`
	ClassYear string             `json:"classYear"`
	Stream    string             `json:"stream"`
	Image     string             `json:"image"`
}

// DataURI renders the image as data:<type>;base64,<payload>, or "" without one.
func (img *ProductImage) DataURI() string {
	if img == nil || len(img.Data) == 0 {
		return ""
	}
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func (p Product) View() ProductView {
	return ProductView{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  p.Quantity,
		Degree:    p.Degree,
		ClassYear: p.ClassYear,
		Stream:    p.Stream,
		Image:     p.Image.DataURI(),
	}
}
