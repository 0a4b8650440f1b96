package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"` // unique
	Password string             `bson:"password" json:"-"`  // bcrypt hash, never serialized
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Date time.Time `bson:"date" json:"date"`
}
