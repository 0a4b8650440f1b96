package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post carries denormalized name/avatar captured at write time; they are
// not kept in sync with the owning user. Likes and comments are embedded
// and mutated by whole-document rewrite.
type Post struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name" json:"name"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`

	Likes    []Like    `bson:"likes" json:"likes"`
	Comments []Comment `bson:"comments" json:"comments"`

	Date time.Time `bson:"date" json:"date"`
}

// Like holds only the user reference; a user appears at most once per
// like list, enforced by the toggle logic rather than the store.
type Like struct {
	User primitive.ObjectID `bson:"user" json:"user"`
}

type Comment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Text   string             `bson:"text" json:"text"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Avatar string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Likes  []Like             `bson:"likes" json:"likes"`

	Date time.Time `bson:"date" json:"date"`
}
