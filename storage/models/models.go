package models

import (
	"time"
)

// Identity is the authenticated requester, resolved outside the service.
type Identity struct {
	UserId string
	Name   string
	Avatar string
}

type Like struct {
	Id     string `bson:"id" json:"id"`
	UserId string `bson:"userId" json:"userId"`
}

type Comment struct {
	Id        string    `bson:"id" json:"id"`
	AuthorId  string    `bson:"authorId" json:"authorId"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Post is the aggregate root. Likes and comments are kept newest first.
// Name and Avatar are copied from the author when the post is created and
// are never refreshed.
type Post struct {
	Id        string    `json:"id"`
	AuthorId  string    `json:"authorId"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	Likes     []Like    `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`

	// Version is bumped by the store on every successful update.
	Version int64 `json:"-"`
}

// Clone returns a copy that shares no slices with p.
func (p *Post) Clone() *Post {
	c := *p
	c.Likes = append(make([]Like, 0, len(p.Likes)), p.Likes...)
	c.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return &c
}
