package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anujv/portfolio/pkg/models"
)

func (r *SQLiteRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("admin is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO admins (username, email, password_hash, created, updated) VALUES (?, ?, ?, ?, ?)`,
		a.Username, a.Email, a.PasswordHash, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	return r.scanAdmin(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created, updated FROM admins WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.scanAdmin(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created, updated FROM admins WHERE email = ?`, email))
}

func (r *SQLiteRepo) GetAdminByEmailOrUsername(ctx context.Context, email, username string) (*models.Admin, error) {
	return r.scanAdmin(r.conn.QueryRow(ctx, `SELECT id, username, email, password_hash, created, updated FROM admins WHERE email = ? OR username = ?`, email, username))
}

func (r *SQLiteRepo) CountAdmins(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&cnt); err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *SQLiteRepo) scanAdmin(row *sql.Row) (*models.Admin, error) {
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &a, nil
}
