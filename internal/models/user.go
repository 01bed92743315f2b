package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password_hash" json:"-"` // Never expose this to the client
	Age          *int32             `bson:"age,omitempty" json:"age,omitempty"`
	FirstName    string             `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName     string             `bson:"last_name,omitempty" json:"lastName,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
