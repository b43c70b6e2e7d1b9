// internal/models/user.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	Photo        string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Role         Role               `json:"role" bson:"role"`
	CreatedAt    string             `json:"created_at" bson:"created_at"`
	LastLoggedIn string             `json:"last_loggedIn" bson:"last_loggedIn"`
}
