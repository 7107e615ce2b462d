package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anujv/portfolio/pkg/models"
)

const contactCols = `id, name, email, subject, message, read, created`

func (r *SQLiteRepo) CreateContact(ctx context.Context, c *models.Contact) (int64, error) {
	if c == nil {
		return 0, fmt.Errorf("contact is nil")
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO contacts (name, email, subject, message, read, created) VALUES (?, ?, ?, ?, 0, ?)`,
		c.Name, c.Email, c.Subject, c.Message, now())
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+contactCols+` FROM contacts WHERE id = ?`, id)

	var c models.Contact
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Read, &c.Created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &c, nil
}

func (r *SQLiteRepo) ListContacts(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+contactCols+` FROM contacts ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &c.Read, &c.Created); err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, rows.Err()
}

// MarkContactRead flips read to true. Re-invoking on an already-read
// message is a no-op success.
func (r *SQLiteRepo) MarkContactRead(ctx context.Context, id int64) (*models.Contact, error) {
	if _, err := r.conn.Exec(ctx, `UPDATE contacts SET read = 1 WHERE id = ?`, id); err != nil {
		return nil, err
	}

	return r.GetContact(ctx, id)
}

func (r *SQLiteRepo) DeleteContact(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	return err
}
