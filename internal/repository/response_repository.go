package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// ResponseRepository manages the append-only inquiry thread.
type ResponseRepository interface {
	Create(ctx context.Context, response *domain.Response) error
	ListByInquiry(ctx context.Context, inquiryID int64) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository builds repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, response *domain.Response) error {
	const query = `
        INSERT INTO inquiry_responses (inquiry_id, sender, sender_name, message)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		response.InquiryID,
		response.Sender,
		response.SenderName,
		response.Message,
	).Scan(&response.ID, &response.CreatedAt)
}

func (r *responseRepository) ListByInquiry(ctx context.Context, inquiryID int64) ([]domain.Response, error) {
	const query = `
        SELECT id, inquiry_id, sender, sender_name, message, created_at
        FROM inquiry_responses WHERE inquiry_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, inquiryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID,
			&response.InquiryID,
			&response.Sender,
			&response.SenderName,
			&response.Message,
			&response.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, response)
	}
	return result, rows.Err()
}
