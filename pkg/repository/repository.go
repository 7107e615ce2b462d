package repository

import (
	"context"

	"github.com/anujv/portfolio/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when no row matches; callers translate that to
// their own not-found handling.

type AdminRepo interface {
	CreateAdmin(ctx context.Context, a *models.Admin) (int64, error)
	GetAdminByID(ctx context.Context, id int64) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByEmailOrUsername(ctx context.Context, email, username string) (*models.Admin, error)
	CountAdmins(ctx context.Context) (int64, error)
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (int64, error)
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	// ListProjects returns all projects ordered by display order
	// ascending, then creation time descending.
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int64) error
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (int64, error)
	GetSkill(ctx context.Context, id int64) (*models.Skill, error)
	// ListSkills returns all skills ordered by category ascending, then
	// display order ascending.
	ListSkills(ctx context.Context) ([]models.Skill, error)
	ListSkillsByCategory(ctx context.Context, category models.SkillCategory) ([]models.Skill, error)
	UpdateSkill(ctx context.Context, s *models.Skill) error
	DeleteSkill(ctx context.Context, id int64) error
}

type ContactRepo interface {
	CreateContact(ctx context.Context, c *models.Contact) (int64, error)
	GetContact(ctx context.Context, id int64) (*models.Contact, error)
	// ListContacts returns all messages newest first.
	ListContacts(ctx context.Context) ([]models.Contact, error)
	// MarkContactRead transitions read to true. The transition is one-way
	// and idempotent; marking an already-read message is a no-op success.
	MarkContactRead(ctx context.Context, id int64) (*models.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}
