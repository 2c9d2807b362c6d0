package model

import "time"

// Roles assignable to a user account. Registration always produces a
// reader; the admin role is granted out of band.
const (
	RoleAdmin  = "admin"
	RoleReader = "reader"
)

// User represents an account document in the `users` collection. The
// password field holds the bcrypt digest and is never serialized in API
// responses.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
