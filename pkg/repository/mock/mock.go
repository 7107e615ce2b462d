package mock

import (
	"context"

	"github.com/anujv/portfolio/pkg/models"
)

// Test helpers and mocks
type Mocks struct {
	AdminRepo *MockAdminRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		AdminRepo: &MockAdminRepo{},
	}
}

// MockAdminRepo holds at most one admin, matching the single-admin model.
type MockAdminRepo struct {
	Stored    *models.Admin
	CreateErr error
	LookupErr error
}

func (m *MockAdminRepo) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.Stored = &models.Admin{ID: 1, Username: a.Username, Email: a.Email, PasswordHash: a.PasswordHash}
	return 1, nil
}

func (m *MockAdminRepo) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		cp := *m.Stored
		return &cp, nil
	}
	return nil, nil
}

func (m *MockAdminRepo) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		cp := *m.Stored
		return &cp, nil
	}
	return nil, nil
}

func (m *MockAdminRepo) GetAdminByEmailOrUsername(ctx context.Context, email, username string) (*models.Admin, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && (m.Stored.Email == email || m.Stored.Username == username) {
		cp := *m.Stored
		return &cp, nil
	}
	return nil, nil
}

func (m *MockAdminRepo) CountAdmins(ctx context.Context) (int64, error) {
	if m.LookupErr != nil {
		return 0, m.LookupErr
	}
	if m.Stored != nil {
		return 1, nil
	}
	return 0, nil
}
