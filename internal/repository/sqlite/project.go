package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/anujv/portfolio/pkg/models"
)

const projectCols = `id, title, description, technologies, github_url, live_url, featured, display_order, image, created, updated`

func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("project is nil")
	}

	techs, err := marshalTechs(p.Technologies)
	if err != nil {
		return 0, err
	}

	ts := now()
	res, err := r.conn.Exec(ctx, `INSERT INTO projects (title, description, technologies, github_url, live_url, featured, display_order, image, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, techs, p.GithubURL, p.LiveURL, p.Featured, p.Order, p.Image, ts, ts)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+projectCols+` FROM projects WHERE id = ?`, id)

	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return p, nil
}

func (r *SQLiteRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+projectCols+` FROM projects ORDER BY display_order ASC, created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}

		out = append(out, *p)
	}

	return out, rows.Err()
}

// UpdateProject writes the full row; merging partial input onto the stored
// record is the caller's job. Last write wins.
func (r *SQLiteRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}

	techs, err := marshalTechs(p.Technologies)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, `UPDATE projects SET title = ?, description = ?, technologies = ?, github_url = ?, live_url = ?, featured = ?, display_order = ?, image = ?, updated = ? WHERE id = ?`,
		p.Title, p.Description, techs, p.GithubURL, p.LiveURL, p.Featured, p.Order, p.Image, now(), p.ID)
	return err
}

func (r *SQLiteRepo) DeleteProject(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

func marshalTechs(t models.TechList) (string, error) {
	if t == nil {
		t = models.TechList{}
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return "", fmt.Errorf("marshal technologies: %w", err)
	}
	return string(b), nil
}

func scanProject(scan func(...any) error) (*models.Project, error) {
	var p models.Project
	var techs string
	if err := scan(&p.ID, &p.Title, &p.Description, &techs, &p.GithubURL, &p.LiveURL, &p.Featured, &p.Order, &p.Image, &p.Created, &p.Updated); err != nil {
		return nil, err
	}

	var list []string
	if err := json.Unmarshal([]byte(techs), &list); err != nil {
		return nil, fmt.Errorf("unmarshal technologies: %w", err)
	}
	p.Technologies = models.NormalizeTechs(list)

	return &p, nil
}
