package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/inkpress/inkpress/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListComments returns the top-level comments of a blog newest first,
// each carrying its replies oldest first with their authors preloaded.
func ListComments(db *gorm.DB, blogId string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := db.
		Where("blog_id = ? AND parent_id IS NULL", blogId).
		Preload("User").
		Preload("Replies", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

// CreateComment attaches a comment to a blog. A parent, when given, must
// exist, belong to the same blog, and be top-level itself: threading is
// exactly one level deep.
func CreateComment(db *gorm.DB, actor *model.User, blogId, content string, parentId *string) (*model.Comment, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyComment
	}

	if _, err := GetBlog(db, actor, blogId); err != nil {
		return nil, err
	}

	if parentId != nil && *parentId != "" {
		var parent model.Comment
		err := db.Where("id = ?", *parentId).First(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidParent
		}
		if err != nil {
			return nil, errors.Wrap(err, "get parent comment")
		}
		if parent.BlogID != blogId || parent.ParentID != nil {
			return nil, ErrInvalidParent
		}
	} else {
		parentId = nil
	}

	comment := &model.Comment{
		Id:       uuid.NewString(),
		Content:  content,
		UserID:   actor.Id,
		BlogID:   blogId,
		ParentID: parentId,
	}
	if err := db.Create(comment).Error; err != nil {
		return nil, errors.Wrap(err, "create comment")
	}

	// Reload with the author attached, handlers return the comment as-is.
	if err := db.Preload("User").Where("id = ?", comment.Id).First(comment).Error; err != nil {
		return nil, errors.Wrap(err, "reload comment")
	}
	return comment, nil
}
