package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// CaseFilter narrows case listings.
type CaseFilter struct {
	CompanyID     *int64
	TagID         *int64
	PublishedOnly bool
	Limit         int
	Offset        int
}

// CaseRepository encapsulates portfolio case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error)
	SetTags(ctx context.Context, caseID int64, tagIDs []int64) error
}

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository returns a Postgres-backed implementation.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	const query = `
        INSERT INTO cases (company_id, title, description, published)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query,
		c.CompanyID,
		c.Title,
		c.Description,
		c.Published,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	if len(c.TagIDs) > 0 {
		return r.SetTags(ctx, c.ID, c.TagIDs)
	}
	return nil
}

func (r *caseRepository) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	const query = `
        SELECT id, company_id, title, description, published, created_at, updated_at
        FROM cases WHERE id=$1`
	var c domain.Case
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.CompanyID,
		&c.Title,
		&c.Description,
		&c.Published,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	tagIDs, err := r.tagIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	c.TagIDs = tagIDs
	return &c, nil
}

func (r *caseRepository) ListWithFilter(ctx context.Context, filter CaseFilter) ([]domain.Case, error) {
	base := `SELECT c.id, c.company_id, c.title, c.description, c.published, c.created_at, c.updated_at
        FROM cases c`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TagID != nil {
		base += ` JOIN case_tags ct ON ct.case_id = c.id`
		args = append(args, *filter.TagID)
		clauses = append(clauses, fmt.Sprintf("ct.tag_id=$%d", len(args)))
	}
	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		clauses = append(clauses, fmt.Sprintf("c.company_id=$%d", len(args)))
	}
	if filter.PublishedOnly {
		clauses = append(clauses, "c.published = TRUE")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY c.created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(
			&c.ID,
			&c.CompanyID,
			&c.Title,
			&c.Description,
			&c.Published,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *caseRepository) SetTags(ctx context.Context, caseID int64, tagIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM case_tags WHERE case_id=$1`, caseID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO case_tags (case_id, tag_id) VALUES ($1,$2)`, caseID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *caseRepository) tagIDs(ctx context.Context, caseID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT tag_id FROM case_tags WHERE case_id=$1 ORDER BY tag_id`, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
