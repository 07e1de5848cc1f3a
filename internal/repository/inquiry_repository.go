package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// InquiryFilter captures listing parameters. GeneralOnly and
// CompanyDirectedOnly select the admin console's two views; CompanyID and
// CustomerID scope member and customer listings.
type InquiryFilter struct {
	CompanyID           *int64
	CustomerID          *int64
	GeneralOnly         bool
	CompanyDirectedOnly bool
	Statuses            []domain.InquiryStatus
	Limit               int
	Offset              int
}

// InquiryRepository encapsulates inquiry persistence.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	Update(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	GetByReferenceKey(ctx context.Context, key string) (*domain.Inquiry, error)
	ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error)
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository instantiates repository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        INSERT INTO inquiries (reference_key, company_id, case_id, customer_id, inquirer_name, inquirer_email, inquirer_phone, message, status, internal_notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		inquiry.ReferenceKey,
		inquiry.CompanyID,
		inquiry.CaseID,
		inquiry.CustomerID,
		inquiry.InquirerName,
		inquiry.InquirerEmail,
		inquiry.InquirerPhone,
		inquiry.Message,
		inquiry.Status,
		inquiry.InternalNotes,
	).Scan(&inquiry.ID, &inquiry.CreatedAt, &inquiry.UpdatedAt)
}

func (r *inquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        UPDATE inquiries SET status=$1, internal_notes=$2, responded_at=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		inquiry.Status,
		inquiry.InternalNotes,
		inquiry.RespondedAt,
		inquiry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const inquiryColumns = `id, reference_key, company_id, case_id, customer_id,
               inquirer_name, inquirer_email, inquirer_phone, message, status,
               internal_notes, responded_at, created_at, updated_at`

func (r *inquiryRepository) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *inquiryRepository) GetByReferenceKey(ctx context.Context, key string) (*domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE reference_key=$1`
	return r.fetchSingle(ctx, query, key)
}

func (r *inquiryRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&inquiry.ID,
		&inquiry.ReferenceKey,
		&inquiry.CompanyID,
		&inquiry.CaseID,
		&inquiry.CustomerID,
		&inquiry.InquirerName,
		&inquiry.InquirerEmail,
		&inquiry.InquirerPhone,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.InternalNotes,
		&inquiry.RespondedAt,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListWithFilter(ctx context.Context, filter InquiryFilter) ([]domain.Inquiry, error) {
	base := `SELECT ` + inquiryColumns + ` FROM inquiries`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CompanyID != nil {
		args = append(args, *filter.CompanyID)
		clauses = append(clauses, fmt.Sprintf("company_id=$%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id=$%d", len(args)))
	}
	if filter.GeneralOnly {
		clauses = append(clauses, "company_id IS NULL")
	}
	if filter.CompanyDirectedOnly {
		clauses = append(clauses, "company_id IS NOT NULL")
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInquiries(rows)
}

func scanInquiries(rows pgx.Rows) ([]domain.Inquiry, error) {
	var result []domain.Inquiry
	for rows.Next() {
		var inquiry domain.Inquiry
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.ReferenceKey,
			&inquiry.CompanyID,
			&inquiry.CaseID,
			&inquiry.CustomerID,
			&inquiry.InquirerName,
			&inquiry.InquirerEmail,
			&inquiry.InquirerPhone,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.InternalNotes,
			&inquiry.RespondedAt,
			&inquiry.CreatedAt,
			&inquiry.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, inquiry)
	}
	return result, rows.Err()
}
