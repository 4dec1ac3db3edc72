package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"civreg/internal/registry/models"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
)

// PostgresStore persists role and binding state in PostgreSQL. Uniqueness
// rules are enforced by constraints so concurrent writers cannot race past
// the service-level pre-checks.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registry store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return sentinel.ErrConflict
	}
	return err
}

func (s *PostgresStore) SaveOfficerRole(ctx context.Context, identity id.Identity, role models.Role) error {
	query := `
		INSERT INTO officer_roles (identity, role)
		VALUES ($1, $2)
		ON CONFLICT (identity) DO UPDATE SET role = officer_roles.role
		RETURNING role
	`
	var stored string
	if err := s.db.QueryRowContext(ctx, query, string(identity), string(role)).Scan(&stored); err != nil {
		return fmt.Errorf("save officer role: %w", translateConflict(err))
	}
	if stored != string(role) {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *PostgresStore) RoleOf(ctx context.Context, identity id.Identity) (models.Role, error) {
	query := `SELECT role FROM officer_roles WHERE identity = $1`
	var role string
	err := s.db.QueryRowContext(ctx, query, string(identity)).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find officer role: %w", err)
	}
	return models.Role(role), nil
}

func (s *PostgresStore) SaveRegionBinding(ctx context.Context, binding *models.RegionBinding) error {
	if binding == nil {
		return fmt.Errorf("region binding is required")
	}
	query := `
		INSERT INTO region_bindings (region_id, officer, metadata_ref, bound_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		int64(binding.RegionID),
		string(binding.Officer),
		binding.MetadataRef,
		binding.BoundAt,
	)
	if err != nil {
		return fmt.Errorf("save region binding: %w", translateConflict(err))
	}
	return nil
}

func (s *PostgresStore) RegionBinding(ctx context.Context, regionID id.RegionID) (*models.RegionBinding, error) {
	query := `
		SELECT region_id, officer, metadata_ref, bound_at
		FROM region_bindings
		WHERE region_id = $1
	`
	return scanRegionBinding(s.db.QueryRowContext(ctx, query, int64(regionID)))
}

func (s *PostgresStore) RegionBindingByOfficer(ctx context.Context, officer id.Identity) (*models.RegionBinding, error) {
	query := `
		SELECT region_id, officer, metadata_ref, bound_at
		FROM region_bindings
		WHERE officer = $1
	`
	return scanRegionBinding(s.db.QueryRowContext(ctx, query, string(officer)))
}

func scanRegionBinding(row *sql.Row) (*models.RegionBinding, error) {
	var (
		regionID    int64
		officer     string
		metadataRef string
		binding     models.RegionBinding
	)
	err := row.Scan(&regionID, &officer, &metadataRef, &binding.BoundAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find region binding: %w", err)
	}
	binding.RegionID = id.RegionID(regionID)
	binding.Officer = id.Identity(officer)
	binding.MetadataRef = metadataRef
	return &binding, nil
}

func (s *PostgresStore) SaveCitizenBinding(ctx context.Context, binding *models.CitizenBinding) error {
	if binding == nil {
		return fmt.Errorf("citizen binding is required")
	}
	query := `
		INSERT INTO citizen_bindings (identity, national_id_hash, registered_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query,
		string(binding.Identity),
		string(binding.NationalIDHash),
		binding.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("save citizen binding: %w", translateConflict(err))
	}
	return nil
}

func (s *PostgresStore) CitizenBinding(ctx context.Context, identity id.Identity) (*models.CitizenBinding, error) {
	query := `
		SELECT identity, national_id_hash, registered_at
		FROM citizen_bindings
		WHERE identity = $1
	`
	return scanCitizenBinding(s.db.QueryRowContext(ctx, query, string(identity)))
}

func (s *PostgresStore) CitizenBindingByHash(ctx context.Context, hash id.NationalIDHash) (*models.CitizenBinding, error) {
	query := `
		SELECT identity, national_id_hash, registered_at
		FROM citizen_bindings
		WHERE national_id_hash = $1
	`
	return scanCitizenBinding(s.db.QueryRowContext(ctx, query, string(hash)))
}

func scanCitizenBinding(row *sql.Row) (*models.CitizenBinding, error) {
	var (
		identity string
		hash     string
		binding  models.CitizenBinding
	)
	err := row.Scan(&identity, &hash, &binding.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find citizen binding: %w", err)
	}
	binding.Identity = id.Identity(identity)
	binding.NationalIDHash = id.NationalIDHash(hash)
	return &binding, nil
}

var _ Store = (*PostgresStore)(nil)
