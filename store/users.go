package store

import (
	"github.com/inkpress/inkpress/model"
	"github.com/inkpress/inkpress/policy"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetUserById loads a single user row. The session middleware calls this
// on every request so that role changes apply immediately.
func GetUserById(db *gorm.DB, id string) (*model.User, error) {
	var user model.User
	err := db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}

// ListUsers returns all accounts newest first. Super admin only.
func ListUsers(db *gorm.DB, actor *model.User) ([]*model.User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}

	var users []*model.User
	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

// UpdateUserRole sets the role of a user. Super admin only, and the role
// must be one of the two known values.
func UpdateUserRole(db *gorm.DB, actor *model.User, id string, role model.UserRole) (*model.User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if !policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := GetUserById(db, id)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := db.Save(user).Error; err != nil {
		return nil, errors.Wrap(err, "update user role")
	}
	return user, nil
}

// DeleteUser removes an account. Super admin only, self-deletion always
// denied. The account's blogs, comments and likes cascade away with it.
func DeleteUser(db *gorm.DB, actor *model.User, id string) error {
	if actor == nil {
		return ErrUnauthorized
	}
	if !policy.CanManageUsers(actor) {
		return ErrForbidden
	}
	if !policy.CanDeleteUser(actor, id) {
		return ErrSelfDelete
	}

	user, err := GetUserById(db, id)
	if err != nil {
		return err
	}
	if err := db.Delete(user).Error; err != nil {
		return errors.Wrap(err, "delete user")
	}
	return nil
}
