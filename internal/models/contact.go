package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContactEntry is a free-form order/contact submission. No field is required.
type ContactEntry struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone         string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Product       string             `bson:"product,omitempty" json:"product,omitempty"`
	Quantity      *Number            `bson:"quantity,omitempty" json:"quantity,omitempty"`
	PaymentMethod string             `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
}
