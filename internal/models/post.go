package models

import "time"

// Post is a feed entry. AuthorName and AuthorAvatar are snapshots taken at
// creation time and are not refreshed when the user record changes later.
type Post struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Text         string    `gorm:"not null" json:"text"`
	Likes        []Like    `gorm:"foreignKey:PostID" json:"likes"`
	Comments     []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Like marks that a user liked a post. The (post_id, user_id) unique index
// gives the like list set semantics at the storage layer, so concurrent
// likes cannot produce duplicates.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user_like" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a reply on a post, newest-first. Author name and avatar are
// snapshots, same as on Post.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"index;not null" json:"-"`
	UserID       uint      `gorm:"not null" json:"user"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Text         string    `gorm:"not null" json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
