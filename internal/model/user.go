package model

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The password hash is a 64-character hex digest under
// the legacy scheme, or a bcrypt string when the bcrypt scheme is
// enabled; callers should treat it as opaque either way.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – contact address (may be empty).
//  PasswordHash – one-way hash of the password.
//  Role         – closed role variant (admin, reporter, viewer).
type User struct {
	ID           uint64 // users.id
	Username     string // users.username
	Email        string // users.email
	PasswordHash string // users.password_hash
	Role         Role   // users.role
}

// Session carries the authenticated user through operations that
// need authorization. It is passed explicitly; there is no ambient
// current-user state anywhere in the module.
type Session struct {
	User User
}

// UserID returns the id of the session owner.
func (s Session) UserID() uint64 { return s.User.ID }

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool { return s.User.Role == RoleAdmin }
