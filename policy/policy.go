// Package policy is the single place that decides who may do what. Every
// HTTP handler is a thin wrapper over one of these functions; none of
// them touch the database.
package policy

import "github.com/inkpress/inkpress/model"

// CanViewBlog: published blogs are public, drafts are restricted to the
// owner and super admins. actor may be nil for anonymous requests.
func CanViewBlog(actor *model.User, blog *model.Blog) bool {
	return blog.VisibleTo(actor)
}

// CanModifyBlog gates update and delete. Authors touch only their own
// blogs, super admins touch everything.
func CanModifyBlog(actor *model.User, blog *model.Blog) bool {
	if actor == nil {
		return false
	}
	if actor.IsSuperAdmin() {
		return true
	}
	return blog.AuthorID == actor.Id
}

// AdminListScoped reports whether the admin dashboard listing must be
// scoped to the actor's own blogs. Super admins see everything.
func AdminListScoped(actor *model.User) bool {
	return !actor.IsSuperAdmin()
}

// CanManageUsers gates the whole user management surface: listing,
// role changes and deletion.
func CanManageUsers(actor *model.User) bool {
	return actor.IsSuperAdmin()
}

// CanDeleteUser allows a super admin to delete any account except their
// own. Self-deletion is denied for every role, always.
func CanDeleteUser(actor *model.User, targetId string) bool {
	if !CanManageUsers(actor) {
		return false
	}
	return actor.Id != targetId
}
