package model

import "time"

/*

Comment is a reader comment on a blog. Threading is exactly one level
deep: a top-level comment has a nil ParentID and may carry replies, a
reply points at a top-level comment and may not have replies of its own.

Id: primary key
CreatedAt: time when entity is created

Content: comment body in plain text, non-empty after trimming
UserID:
User: commenting user, "belongs-to" relation
BlogID: blog this comment is attached to
ParentID: nil for top-level comments, otherwise the top-level parent on
		the same blog

Replies: reply comments, ordered oldest first when listed

*/
type Comment struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    string    `gorm:"not null" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	BlogID    string    `gorm:"index;not null" json:"blogId"`
	ParentID  *string   `gorm:"index" json:"parentId"`

	Replies []*Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE;" json:"replies,omitempty"`
}
