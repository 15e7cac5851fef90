package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/dbx"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation, raised for ids that are not uuids
const invalidTextRepresentation = "22P02"

const recordColumns = `id, name, email, phone, description, added_by, resume_url, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	var (
		rec    models.Record
		resume sql.NullString
	)
	if err := s.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &rec.Description,
		&rec.AddedBy, &resume, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if resume.Valid {
		rec.ResumeURL = &resume.String
	}
	return &rec, nil
}

func isMissing(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM fraud_candidates ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM fraud_candidates WHERE id = $1`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if isMissing(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO fraud_candidates (name, email, phone, description, added_by, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	var resume sql.NullString
	if rec.ResumeURL != nil {
		resume = sql.NullString{String: *rec.ResumeURL, Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		rec.Name, rec.Email, rec.Phone, rec.Description, rec.AddedBy, resume).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) UpdateOwned(ctx context.Context, id string, owner string, patch *models.RecordPatch) (*models.Record, error) {
	query := `
		UPDATE fraud_candidates
		SET name = $3, email = $4, phone = $5, description = $6,
			resume_url = COALESCE($7::text, resume_url)
		WHERE id = $1 AND added_by = $2
		RETURNING ` + recordColumns

	var resume sql.NullString
	if patch.ResumeURL != nil {
		resume = sql.NullString{String: *patch.ResumeURL, Valid: true}
	}

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query,
		id, owner, patch.Name, patch.Email, patch.Phone, patch.Description, resume))
	if err == nil {
		return rec, nil
	}
	if !isMissing(err) {
		return nil, fmt.Errorf("db error: %w", err)
	}

	// nothing updated: either the row is absent or the owner differs
	exists, err := r.exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrorNotFound
	}
	return nil, common.ErrAccessDenied
}

func (r *PostgresRepository) exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM fraud_candidates WHERE id = $1)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		if isMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}
