package model

import "time"

// DefaultCategory is applied when a blog is created without a category.
const DefaultCategory = "Web Dev"

/*

Blog is a single article, either a draft or a published piece.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time when entity is last updated

Title: headline in plain text
Description: short summary shown on listing cards
Content: full body in markdown
CoverImage: URL of the cover image, optional
Category: free-form label used for public listing filters
Published: false means draft, visible only to the owner and super admins
AuthorName: display name snapshot at creation time
AuthorImage: avatar URL snapshot, optional
AuthorID:
Author: owning user, "belongs-to" relation

Comments: all comments on this blog, removed together with the blog
Likes: all likes on this blog, removed together with the blog

*/
type Blog struct {
	Id          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"coverImage"`
	Category    string    `gorm:"not null" json:"category"`
	Published   bool      `gorm:"not null;default:false" json:"published"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	AuthorID    string    `gorm:"index;not null" json:"authorId"`
	Author      *User     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Comments []*Comment `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE;" json:"-"`
	Likes    []*Like    `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE;" json:"-"`
}

// VisibleTo reports whether actor may read this blog. Published blogs are
// public, drafts are restricted to the owner and super admins.
func (b *Blog) VisibleTo(actor *User) bool {
	if b.Published {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.IsSuperAdmin() || b.AuthorID == actor.Id
}
