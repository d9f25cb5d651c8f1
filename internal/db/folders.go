package db

import (
	"context"
	"database/sql"

	"github.com/shouta256/todo-next-spring/internal/model"
)

// GetFolders returns the folders of one owner. A nil owner selects folders
// whose owner is unset.
func (db *DB) GetFolders(ctx context.Context, ownerID *int64) ([]model.Folder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if ownerID == nil {
		rows, err = db.QueryContext(ctx, `
			SELECT id, name, user_id FROM folders WHERE user_id IS NULL ORDER BY id
		`)
	} else {
		rows, err = db.QueryContext(ctx, `
			SELECT id, name, user_id FROM folders WHERE user_id = ? ORDER BY id
		`, *ownerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *f)
	}

	return folders, rows.Err()
}

// GetFolder returns a single folder by ID
func (db *DB) GetFolder(ctx context.Context, id int64) (*model.Folder, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, name, user_id FROM folders WHERE id = ?
	`, id)

	f, err := scanFolder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return f, err
}

// CreateFolder creates a new folder
func (db *DB) CreateFolder(ctx context.Context, name string, ownerID int64) (*model.Folder, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO folders (name, user_id) VALUES (?, ?)
	`, name, ownerID)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Folder{
		ID:     id,
		Name:   name,
		UserID: &ownerID,
	}, nil
}

// RenameFolder updates a folder's name
func (db *DB) RenameFolder(ctx context.Context, id int64, name string) error {
	_, err := db.ExecContext(ctx, `UPDATE folders SET name = ? WHERE id = ?`, name, id)
	return err
}

// DeleteFolder deletes a folder together with every todo filed under it
func (db *DB) DeleteFolder(ctx context.Context, id int64) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE folder_id = ?`, id)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
		return err
	})
}

func scanFolder(s scanner) (*model.Folder, error) {
	var f model.Folder
	var userID sql.NullInt64
	if err := s.Scan(&f.ID, &f.Name, &userID); err != nil {
		return nil, err
	}
	if userID.Valid {
		f.UserID = &userID.Int64
	}
	return &f, nil
}
