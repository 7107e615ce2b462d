package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/anujv/portfolio/pkg/models"
)

const skillCols = `id, name, category, icon, proficiency, display_order, created, updated`

func (r *SQLiteRepo) CreateSkill(ctx context.Context, s *models.Skill) (int64, error) {
	if s == nil {
		return 0, fmt.Errorf("skill is nil")
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO skills (name, category, icon, proficiency, display_order, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Name, string(s.Category), s.Icon, s.Proficiency, s.Order, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+skillCols+` FROM skills WHERE id = ?`, id)

	var s models.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Icon, &s.Proficiency, &s.Order, &s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &s, nil
}

func (r *SQLiteRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return r.querySkills(ctx, `SELECT `+skillCols+` FROM skills ORDER BY category ASC, display_order ASC`)
}

func (r *SQLiteRepo) ListSkillsByCategory(ctx context.Context, category models.SkillCategory) ([]models.Skill, error) {
	return r.querySkills(ctx, `SELECT `+skillCols+` FROM skills WHERE category = ? ORDER BY display_order ASC`, string(category))
}

func (r *SQLiteRepo) UpdateSkill(ctx context.Context, s *models.Skill) error {
	if s == nil {
		return fmt.Errorf("skill is nil")
	}

	_, err := r.conn.Exec(ctx, `UPDATE skills SET name = ?, category = ?, icon = ?, proficiency = ?, display_order = ?, updated = ? WHERE id = ?`,
		s.Name, string(s.Category), s.Icon, s.Proficiency, s.Order, now(), s.ID)
	return err
}

func (r *SQLiteRepo) DeleteSkill(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM skills WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) querySkills(ctx context.Context, query string, args ...any) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Skill
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Icon, &s.Proficiency, &s.Order, &s.Created, &s.Updated); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}
