package models

import (
	"time"
)

// Post is an immutable social-media post. Records are created and deleted,
// never updated; TimeStamp is assigned by the server at write time.
type Post struct {
	PostID    string    `gorm:"primaryKey" json:"post_id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	PostText  string    `json:"post_text"`
	TimeStamp time.Time `gorm:"index" json:"time_stamp"`
}

func (Post) TableName() string {
	return "posts"
}
