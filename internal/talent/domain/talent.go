package talent

import (
	"context"
	"errors"
	"time"
)

// Talent represents a managed talent profile.
type Talent struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks talent invariants.
func (t Talent) Validate() error {
	if t.ID == "" {
		return errors.New("talent: empty id")
	}
	if t.Name == "" {
		return errors.New("talent: empty name")
	}
	return nil
}

// Directory resolves talents by id or display name.
type Directory interface {
	Get(ctx context.Context, id string) (*Talent, error)
	// FindByName resolves a talent by case-insensitive display name.
	// A miss returns (nil, nil).
	FindByName(ctx context.Context, name string) (*Talent, error)
	List(ctx context.Context) ([]Talent, error)
}
