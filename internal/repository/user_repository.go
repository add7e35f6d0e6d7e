package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tattlestoolie/tattlestoolie/internal/model"
	"github.com/tattlestoolie/tattlestoolie/internal/utils"
)

// Password scheme names accepted by UserRepo.
const (
	SchemeSHA256 = "sha256" // legacy unsalted digest, matches stored hashes
	SchemeBcrypt = "bcrypt" // salted, for new deployments
)

// UserRepo persists user accounts and verifies credentials.
// Scheme selects the password hashing scheme; it must match the
// format already stored in users.password_hash.
type UserRepo struct {
	DB         *sql.DB
	Scheme     string
	BcryptCost int
}

func NewUserRepo(db *sql.DB, scheme string, bcryptCost int) *UserRepo {
	if scheme == "" {
		scheme = SchemeSHA256
	}
	return &UserRepo{DB: db, Scheme: scheme, BcryptCost: bcryptCost}
}

// Create inserts a new user. A duplicate username yields
// ErrUsernameExists; anything else is a storage failure.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, role model.Role) error {
	username = strings.TrimSpace(username)
	if role == "" {
		role = model.RoleReporter
	}
	hash, err := r.hash(password)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, role.String())
	if err != nil {
		if isDuplicate(err) {
			return ErrUsernameExists
		}
		return err
	}
	return nil
}

// Authenticate resolves a (username, password) pair to a user.
// Under the legacy scheme this is a single equality query on the
// stored digest; under bcrypt it fetches by username and verifies.
// Either way the only non-storage failure is ErrInvalidCredentials.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if r.Scheme == SchemeBcrypt {
		u, err := r.getByUsername(ctx, username)
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		if err != nil {
			return model.User{}, err
		}
		if !utils.VerifyPasswordBcrypt(u.PasswordHash, password) {
			return model.User{}, ErrInvalidCredentials
		}
		return u, nil
	}
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, role FROM users WHERE username=? AND password_hash=? LIMIT 1",
		username, utils.HashPasswordSHA256(password))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, err
}

// SeedAdmin creates an admin account, or if the username is taken
// overwrites its password hash, role and email. Out-of-band
// bootstrap only; never reachable from end-user flows.
func (r *UserRepo) SeedAdmin(ctx context.Context, username, password, email string) error {
	username = strings.TrimSpace(username)
	hash, err := r.hash(password)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, model.RoleAdmin.String())
	if err == nil {
		return nil
	}
	if !isDuplicate(err) {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, role=?, email=? WHERE username=?",
		hash, model.RoleAdmin.String(), email, username)
	return err
}

func (r *UserRepo) getByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, role FROM users WHERE username=? LIMIT 1",
		username)
	return scanUser(row)
}

func (r *UserRepo) hash(plain string) (string, error) {
	if r.Scheme == SchemeBcrypt {
		return utils.HashPasswordBcrypt(plain, r.BcryptCost)
	}
	return utils.HashPasswordSHA256(plain), nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var email sql.NullString
	var role string
	if err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &role); err != nil {
		return model.User{}, err
	}
	u.Email = email.String
	u.Role = model.ParseRole(role)
	return u, nil
}

// isDuplicate detects the MySQL duplicate-entry error (code 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
