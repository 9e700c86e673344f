package store

import (
	"github.com/google/uuid"
	"github.com/inkpress/inkpress/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ToggleLike flips the like state of (actor, blog) and reports the new
// state. Delete first: if a row went away the user just unliked. The
// insert path may race with itself across requests; the unique index on
// (user_id, blog_id) is the guard, and a duplicate key error means some
// concurrent toggle won, so the blog is liked either way.
func ToggleLike(db *gorm.DB, actor *model.User, blogId string) (bool, error) {
	if actor == nil {
		return false, ErrUnauthorized
	}
	if _, err := GetBlog(db, actor, blogId); err != nil {
		return false, err
	}

	res := db.Where("user_id = ? AND blog_id = ?", actor.Id, blogId).Delete(&model.Like{})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "remove like")
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := &model.Like{
		Id:     uuid.NewString(),
		UserID: actor.Id,
		BlogID: blogId,
	}
	err := db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "create like")
	}
	return true, nil
}

// CountLikes returns the number of likes on a blog.
func CountLikes(db *gorm.DB, blogId string) (int64, error) {
	var count int64
	if err := db.Model(&model.Like{}).Where("blog_id = ?", blogId).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count likes")
	}
	return count, nil
}

// LikeStatus returns the like count plus whether actor (possibly nil,
// for anonymous readers) has liked the blog.
func LikeStatus(db *gorm.DB, actor *model.User, blogId string) (count int64, liked bool, err error) {
	count, err = CountLikes(db, blogId)
	if err != nil {
		return 0, false, err
	}
	if actor == nil {
		return count, false, nil
	}

	var n int64
	err = db.Model(&model.Like{}).Where("user_id = ? AND blog_id = ?", actor.Id, blogId).Count(&n).Error
	if err != nil {
		return 0, false, errors.Wrap(err, "check like status")
	}
	return count, n > 0, nil
}
