package model

import "time"

// UserRole is the role a user holds. There are exactly two roles in the
// system and every user holds exactly one of them.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAuthor     UserRole = "AUTHOR"
)

// IsValid returns true iff the role is one of the two known roles.
func (r UserRole) IsValid() bool {
	return r == RoleSuperAdmin || r == RoleAuthor
}

/*

User is an account that can author blogs and engage with them.

Id: primary key
CreatedAt: time when entity is created
UpdatedAt: time when entity is last updated

Email: unique login identity, also used for super admin promotion matching
Name: display name, optional
PasswordHash: bcrypt hash of the password, only set in local auth mode,
		never serialized to clients
ExternalId: stable id assigned by an external identity provider, only set
		in external auth mode
Role: SUPER_ADMIN or AUTHOR

Blogs: all blogs authored by this user, "has-many" relation

*/
type User struct {
	Id           string    `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	ExternalId   *string   `gorm:"uniqueIndex" json:"-"`
	Role         UserRole  `gorm:"not null" json:"role"`

	Blogs []*Blog `gorm:"foreignKey:AuthorID" json:"blogs,omitempty"`
}

// IsSuperAdmin is a convenience helper used all over the authorization
// layer. Safe to call on a nil user (anonymous request).
func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}
