package model

import "time"

/*

Like marks that a user liked a blog. Existence is the whole payload:
present means liked, absent means not liked. The composite unique index
on (UserID, BlogID) is the storage-level guard against a double like
slipping in through concurrent toggles.

*/
type Like struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    string    `gorm:"not null;uniqueIndex:idx_likes_user_blog" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	BlogID    string    `gorm:"not null;uniqueIndex:idx_likes_user_blog" json:"blogId"`
}
