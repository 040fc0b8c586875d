package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	talent "talentdesk/internal/talent/domain"
)

// DBTX is the subset of database/sql used by repositories, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const defaultTalentsTable = "talents"

// TalentRepository is a Postgres implementation of the talent directory.
type TalentRepository struct {
	db    DBTX
	table string
}

// NewTalentRepository constructs a repository.
func NewTalentRepository(db DBTX, opts ...TalentOption) *TalentRepository {
	repo := &TalentRepository{db: db, table: defaultTalentsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// TalentOption configures the repository.
type TalentOption func(*TalentRepository)

// WithTalentsTable overrides the default table name.
func WithTalentsTable(table string) TalentOption {
	return func(repo *TalentRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Get loads a talent by id.
func (r *TalentRepository) Get(ctx context.Context, id string) (*talent.Talent, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("talent repo: nil db")
	}
	if id == "" {
		return nil, errors.New("talent repo: empty id")
	}

	query := fmt.Sprintf(`
SELECT id, tenant_id, name, email, phone, active, created_at, updated_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByName resolves a talent by case-insensitive display name. A miss
// returns (nil, nil).
func (r *TalentRepository) FindByName(ctx context.Context, name string) (*talent.Talent, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("talent repo: nil db")
	}
	if name == "" {
		return nil, nil
	}

	query := fmt.Sprintf(`
SELECT id, tenant_id, name, email, phone, active, created_at, updated_at
FROM %s
WHERE LOWER(name) = LOWER($1)
LIMIT 1`, r.table)

	return r.scanOne(r.db.QueryRowContext(ctx, query, name))
}

// List returns all talents ordered by name.
func (r *TalentRepository) List(ctx context.Context) ([]talent.Talent, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("talent repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, tenant_id, name, email, phone, active, created_at, updated_at
FROM %s
ORDER BY name`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var talents []talent.Talent
	for rows.Next() {
		var t talent.Talent
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.Name, &t.Email, &t.Phone, &t.Active, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		t.UpdatedAt = t.UpdatedAt.UTC()
		talents = append(talents, t)
	}
	return talents, rows.Err()
}

// Save upserts a talent.
func (r *TalentRepository) Save(ctx context.Context, t *talent.Talent) error {
	if r == nil || r.db == nil {
		return errors.New("talent repo: nil db")
	}
	if t == nil {
		return errors.New("talent repo: nil talent")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	id,
	tenant_id,
	name,
	email,
	phone,
	active
) VALUES (
	$1, $2, $3, $4, $5, $6
)
ON CONFLICT (id)
DO UPDATE SET
	tenant_id = EXCLUDED.tenant_id,
	name = EXCLUDED.name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	active = EXCLUDED.active,
	updated_at = NOW()`, r.table)

	_, err := r.db.ExecContext(ctx, query, t.ID, t.TenantID, t.Name, t.Email, t.Phone, t.Active)
	return err
}

func (r *TalentRepository) scanOne(row *sql.Row) (*talent.Talent, error) {
	var t talent.Talent
	if err := row.Scan(
		&t.ID, &t.TenantID, &t.Name, &t.Email, &t.Phone, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}
