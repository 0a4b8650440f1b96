package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is one-to-one with User via the user field. Experience and
// education entries are kept newest-first; each gets its own ObjectID
// when inserted so it can be removed by id later.
type Profile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Handle string             `bson:"handle" json:"handle"` // unique
	Status string             `bson:"status" json:"status"`
	Skills []string           `bson:"skills" json:"skills"`

	Company  string `bson:"company,omitempty" json:"company,omitempty"`
	Website  string `bson:"website,omitempty" json:"website,omitempty"`
	Location string `bson:"location,omitempty" json:"location,omitempty"`

	Social SocialLinks `bson:"social,omitempty" json:"social,omitempty"`

	Experience []Experience `bson:"experience" json:"experience"`
	Education  []Education  `bson:"education" json:"education"`

	Date time.Time `bson:"date" json:"date"`

	// Owner carries the owning user's name/avatar, populated in
	// responses only and never stored.
	Owner *UserSummary `bson:"-" json:"owner,omitempty"`
}

type UserSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar,omitempty"`
}

type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

type Experience struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Company     string             `bson:"company" json:"company"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	From        string             `bson:"from" json:"from"`
	To          string             `bson:"to,omitempty" json:"to,omitempty"`
	Current     bool               `bson:"current" json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	School       string             `bson:"school" json:"school"`
	Degree       string             `bson:"degree" json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy" json:"fieldofstudy"`
	From         string             `bson:"from" json:"from"`
	To           string             `bson:"to,omitempty" json:"to,omitempty"`
	Current      bool               `bson:"current" json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}
