package auth

import (
	"os"

	"github.com/google/uuid"
	"github.com/inkpress/inkpress/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrMissingIdentity rejects a sync call without the mandatory fields of
// an externally verified identity.
var ErrMissingIdentity = errors.New("missing external identity")

// SyncExternalUser maps an externally verified identity onto a local user
// row, creating it on first sign-in. The super admin promotion check runs
// on every sync, not only at creation: the configured SUPER_ADMIN_EMAIL
// may name an account that signed in long before the variable was set.
func SyncExternalUser(db *gorm.DB, externalId, email, name string) (*model.User, error) {
	if externalId == "" || email == "" {
		return nil, ErrMissingIdentity
	}

	isSuperAdmin := email == os.Getenv("SUPER_ADMIN_EMAIL") && os.Getenv("SUPER_ADMIN_EMAIL") != ""

	var user model.User
	err := db.Where("external_id = ?", externalId).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		role := model.RoleAuthor
		if isSuperAdmin {
			role = model.RoleSuperAdmin
		}
		if name == "" {
			name = "Anonymous"
		}
		user = model.User{
			Id:         uuid.NewString(),
			Email:      email,
			Name:       name,
			ExternalId: &externalId,
			Role:       role,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, errors.Wrap(err, "create synced user")
		}
		return &user, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "look up user by external id")
	}

	if isSuperAdmin && user.Role != model.RoleSuperAdmin {
		user.Role = model.RoleSuperAdmin
		if err := db.Save(&user).Error; err != nil {
			return nil, errors.Wrap(err, "promote synced user")
		}
	}
	return &user, nil
}
