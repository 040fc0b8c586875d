package auth

import (
	"context"
	"database/sql"
	"errors"

	talentrepo "talentdesk/internal/talent/infrastructure/postgres"
)

var (
	// ErrTenantMismatch indicates resource belongs to a different tenant.
	ErrTenantMismatch = errors.New("tenant mismatch")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("resource not found")
)

// TalentTenantChecker validates talent tenant ownership.
type TalentTenantChecker interface {
	EnsureTalentTenant(ctx context.Context, tenantID, talentID string) error
}

// TalentChecker checks talent ownership using the talent directory.
type TalentChecker struct {
	repo *talentrepo.TalentRepository
}

// NewTalentChecker constructs a TalentChecker.
func NewTalentChecker(db *sql.DB) *TalentChecker {
	if db == nil {
		return nil
	}
	return &TalentChecker{repo: talentrepo.NewTalentRepository(db)}
}

// EnsureTalentTenant verifies talent belongs to tenant.
func (c *TalentChecker) EnsureTalentTenant(ctx context.Context, tenantID, talentID string) error {
	if c == nil || c.repo == nil {
		return nil
	}
	if tenantID == "" || talentID == "" {
		return nil
	}
	t, err := c.repo.Get(ctx, talentID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}
	if t.TenantID != "" && t.TenantID != tenantID {
		return ErrTenantMismatch
	}
	return nil
}
