package db

import (
	"context"
	"database/sql"

	"github.com/shouta256/todo-next-spring/internal/model"
)

// GetUserByUsername returns the user with the exact (case-sensitive)
// username, or nil if there is none.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.QueryRowContext(ctx, `
		SELECT id, username, password FROM users WHERE username = ?
	`, username).Scan(&u.ID, &u.Username, &u.Password)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user. A taken username yields model.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, username, passwordDigest string) (*model.User, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO users (username, password) VALUES (?, ?)
	`, username, passwordDigest)
	if isUniqueViolation(err) {
		return nil, model.ErrConflict
	}
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.User{
		ID:       id,
		Username: username,
		Password: passwordDigest,
	}, nil
}
