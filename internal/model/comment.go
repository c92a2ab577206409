package model

import "time"

// Comment is a reply attached to exactly one item.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// AnonymousAuthor is the author recorded when none was given.
const AnonymousAuthor = "anonymous"
