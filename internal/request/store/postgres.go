package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"civreg/internal/request/models"
	"civreg/internal/sentinel"
	id "civreg/pkg/domain"
)

// PostgresStore persists requests in PostgreSQL. The dense id sequence is
// allocated as MAX(id)+1 inside the insert transaction; the primary key
// surfaces racing writers, which the single sequencer in front of this
// store prevents in normal operation.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed request store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const requestColumns = `
	id, applicant, kind, move_subtype, document_ref,
	origin_region_id, destination_region_id,
	status, rejection_reason,
	origin_verifier, origin_verified_at,
	destination_verifier, destination_verified_at,
	central_verifier, central_verified_at,
	official_document_ref, submitted_at
`

func (s *PostgresStore) Insert(ctx context.Context, request *models.Request) (id.RequestID, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin insert request: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), -1) + 1 FROM requests`).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocate request id: %w", err)
	}

	query := `
		INSERT INTO requests (` + requestColumns + `, status_entered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = tx.ExecContext(ctx, query,
		next,
		string(request.Applicant),
		string(request.Kind),
		string(request.MoveSubtype),
		request.DocumentRef,
		int64(request.OriginRegionID),
		int64(request.DestinationRegionID),
		string(request.Status),
		request.RejectionReason,
		string(request.OriginVerifier),
		request.OriginVerifiedAt,
		string(request.DestinationVerifier),
		request.DestinationVerifiedAt,
		string(request.CentralVerifier),
		request.CentralVerifiedAt,
		request.OfficialDocumentRef,
		request.SubmittedAt,
		request.SubmittedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert request: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert request: %w", err)
	}

	request.ID = id.RequestID(next)
	return request.ID, nil
}

func (s *PostgresStore) Get(ctx context.Context, requestID id.RequestID) (*models.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	return scanRequest(s.db.QueryRowContext(ctx, query, int64(requestID)))
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, request *models.Request, oldStatus models.Status) error {
	query := `
		UPDATE requests SET
			status = $1,
			rejection_reason = $2,
			origin_verifier = $3,
			origin_verified_at = $4,
			destination_verifier = $5,
			destination_verified_at = $6,
			central_verifier = $7,
			central_verified_at = $8,
			official_document_ref = $9,
			status_entered_at = CASE WHEN status = $1 THEN status_entered_at ELSE $10 END
		WHERE id = $11 AND status = $12
	`
	res, err := s.db.ExecContext(ctx, query,
		string(request.Status),
		request.RejectionReason,
		string(request.OriginVerifier),
		request.OriginVerifiedAt,
		string(request.DestinationVerifier),
		request.DestinationVerifiedAt,
		string(request.CentralVerifier),
		request.CentralVerifiedAt,
		request.OfficialDocumentRef,
		time.Now(),
		int64(request.ID),
		string(oldStatus),
	)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	if affected == 0 {
		if _, err := s.Get(ctx, request.ID); err != nil {
			return err
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *PostgresStore) ListByApplicant(ctx context.Context, applicant id.Identity) ([]id.RequestID, error) {
	query := `SELECT id FROM requests WHERE applicant = $1 ORDER BY id`
	return s.listIDs(ctx, query, string(applicant))
}

func (s *PostgresStore) ListByOriginRegion(ctx context.Context, regionID id.RegionID) ([]id.RequestID, error) {
	query := `SELECT id FROM requests WHERE origin_region_id = $1 ORDER BY id`
	return s.listIDs(ctx, query, int64(regionID))
}

func (s *PostgresStore) ListByDestinationRegion(ctx context.Context, regionID id.RegionID) ([]id.RequestID, error) {
	query := `SELECT id FROM requests WHERE kind = $1 AND destination_region_id = $2 ORDER BY id`
	return s.listIDs(ctx, query, string(models.KindMove), int64(regionID))
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status models.Status) ([]id.RequestID, error) {
	query := `SELECT id FROM requests WHERE status = $1 ORDER BY status_entered_at, id`
	return s.listIDs(ctx, query, string(status))
}

func (s *PostgresStore) ListByOriginRegionAndStatus(ctx context.Context, regionID id.RegionID, status models.Status) ([]id.RequestID, error) {
	query := `SELECT id FROM requests WHERE origin_region_id = $1 AND status = $2 ORDER BY id`
	return s.listIDs(ctx, query, int64(regionID), string(status))
}

func (s *PostgresStore) Count(ctx context.Context) (uint64, error) {
	var count uint64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM requests`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) listIDs(ctx context.Context, query string, args ...any) ([]id.RequestID, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list request ids: %w", err)
	}
	defer rows.Close()

	ids := []id.RequestID{}
	for rows.Next() {
		var raw int64
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan request id: %w", err)
		}
		ids = append(ids, id.RequestID(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list request ids: %w", err)
	}
	return ids, nil
}

func scanRequest(row *sql.Row) (*models.Request, error) {
	var (
		request             models.Request
		requestID           int64
		applicant           string
		kind                string
		moveSubtype         string
		originRegion        int64
		destinationRegion   int64
		status              string
		originVerifier      string
		destinationVerifier string
		centralVerifier     string
	)
	err := row.Scan(
		&requestID,
		&applicant,
		&kind,
		&moveSubtype,
		&request.DocumentRef,
		&originRegion,
		&destinationRegion,
		&status,
		&request.RejectionReason,
		&originVerifier,
		&request.OriginVerifiedAt,
		&destinationVerifier,
		&request.DestinationVerifiedAt,
		&centralVerifier,
		&request.CentralVerifiedAt,
		&request.OfficialDocumentRef,
		&request.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	request.ID = id.RequestID(requestID)
	request.Applicant = id.Identity(applicant)
	request.Kind = models.Kind(kind)
	request.MoveSubtype = models.MoveSubtype(moveSubtype)
	request.OriginRegionID = id.RegionID(originRegion)
	request.DestinationRegionID = id.RegionID(destinationRegion)
	request.Status = models.Status(status)
	request.OriginVerifier = id.Identity(originVerifier)
	request.DestinationVerifier = id.Identity(destinationVerifier)
	request.CentralVerifier = id.Identity(centralVerifier)
	return &request, nil
}

var _ Store = (*PostgresStore)(nil)
