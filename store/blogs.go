package store

import (
	"github.com/google/uuid"
	"github.com/inkpress/inkpress/model"
	"github.com/inkpress/inkpress/policy"
	"github.com/inkpress/inkpress/utils"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// BlogInput is the full set of blog fields a caller may supply. Applying
// it with copier is what keeps Id, CreatedAt, UpdatedAt and AuthorID out
// of reach of the payload: the struct simply has no such fields.
type BlogInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
	CoverImage  string `json:"coverImage"`
	Category    string `json:"category"`
	Published   bool   `json:"published"`
	AuthorName  string `json:"authorName"`
	AuthorImage string `json:"authorImage"`
}

// ListBlogs returns blogs newest first. The public view only ever sees
// published blogs, optionally narrowed to a category (case-insensitive
// exact match). The admin view requires an actor and scopes authors down
// to their own blogs; super admins see everything.
func ListBlogs(db *gorm.DB, actor *model.User, adminView bool, category string) ([]*model.Blog, error) {
	query := db.Model(&model.Blog{}).Order("created_at DESC")

	if adminView {
		if actor == nil {
			return nil, ErrUnauthorized
		}
		if policy.AdminListScoped(actor) {
			query = query.Where("author_id = ?", actor.Id)
		}
	} else {
		query = query.Where("published = ?", true)
		if category != "" {
			query = query.Where("LOWER(category) = LOWER(?)", category)
		}
	}

	var blogs []*model.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, errors.Wrap(err, "list blogs")
	}
	return blogs, nil
}

// GetBlog loads one blog, hiding drafts from everyone but the owner and
// super admins. A draft the actor may not see reports ErrNotFound, not
// ErrForbidden, so its existence never leaks.
func GetBlog(db *gorm.DB, actor *model.User, id string) (*model.Blog, error) {
	var blog model.Blog
	err := db.Where("id = ?", id).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get blog")
	}
	if !policy.CanViewBlog(actor, &blog) {
		return nil, ErrNotFound
	}
	return &blog, nil
}

// CreateBlog inserts a new blog owned by actor. Defaults: category
// "Web Dev", author name falls back to the actor's display name and then
// to the local part of their email, published false.
func CreateBlog(db *gorm.DB, actor *model.User, input *BlogInput) (*model.Blog, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	blog := &model.Blog{
		Id:       uuid.NewString(),
		AuthorID: actor.Id,
	}
	if err := copier.Copy(blog, input); err != nil {
		return nil, errors.Wrap(err, "apply blog input")
	}
	if blog.Category == "" {
		blog.Category = model.DefaultCategory
	}
	if blog.AuthorName == "" {
		if actor.Name != "" {
			blog.AuthorName = actor.Name
		} else {
			blog.AuthorName = utils.EmailLocalPart(actor.Email)
		}
	}

	if err := db.Create(blog).Error; err != nil {
		return nil, errors.Wrap(err, "create blog")
	}
	return blog, nil
}

// UpdateBlog overwrites the caller-settable fields of a blog. Whole
// object semantics: the caller resubmits every field, absent ones reset
// to their zero value.
func UpdateBlog(db *gorm.DB, actor *model.User, id string, input *BlogInput) (*model.Blog, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}

	var blog model.Blog
	err := db.Where("id = ?", id).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get blog for update")
	}
	if !policy.CanModifyBlog(actor, &blog) {
		return nil, ErrForbidden
	}

	if err := copier.Copy(&blog, input); err != nil {
		return nil, errors.Wrap(err, "apply blog input")
	}
	if err := db.Save(&blog).Error; err != nil {
		return nil, errors.Wrap(err, "update blog")
	}
	return &blog, nil
}

// DeleteBlog hard deletes a blog. Comments and likes go with it through
// the foreign key cascade.
func DeleteBlog(db *gorm.DB, actor *model.User, id string) error {
	if actor == nil {
		return ErrUnauthorized
	}

	var blog model.Blog
	err := db.Where("id = ?", id).First(&blog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "get blog for delete")
	}
	if !policy.CanModifyBlog(actor, &blog) {
		return ErrForbidden
	}

	if err := db.Delete(&blog).Error; err != nil {
		return errors.Wrap(err, "delete blog")
	}
	return nil
}
