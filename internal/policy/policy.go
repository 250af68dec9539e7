// Package policy holds the pure authorization predicates evaluated per
// request against the current session actor.
package policy

import "github.com/dtroode/microblog-server/internal/model"

// CanDeleteUser reports whether actor may delete target. Only admins
// delete users, and an admin may not delete themself.
func CanDeleteUser(actor, target model.User) bool {
	return actor.Admin && actor.ID != target.ID
}

// CanDeleteMicropost reports whether actor may delete post. Only the
// owner may; there is no admin override for posts.
func CanDeleteMicropost(actor model.User, post model.Micropost) bool {
	return actor.ID == post.UserID
}

// CanUpdateUser reports whether actor may edit target's profile.
func CanUpdateUser(actor, target model.User) bool {
	return actor.ID == target.ID
}
