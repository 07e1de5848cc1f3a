package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// TagRepository encapsulates tag taxonomy persistence. Ordering is a dense
// display_order sequence maintained by neighbor swaps.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	Update(ctx context.Context, tag *domain.Tag) error
	GetByID(ctx context.Context, id int64) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Delete(ctx context.Context, id int64) error
	MaxDisplayOrder(ctx context.Context) (int, error)
	SwapDisplayOrder(ctx context.Context, a, b *domain.Tag) error
}

type tagRepository struct {
	pool *pgxpool.Pool
}

// NewTagRepository returns a Postgres-backed implementation.
func NewTagRepository(pool *pgxpool.Pool) TagRepository {
	return &tagRepository{pool: pool}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	const query = `
        INSERT INTO tags (name, display_order)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		tag.Name,
		tag.DisplayOrder,
	).Scan(&tag.ID, &tag.CreatedAt, &tag.UpdatedAt)
}

func (r *tagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	const query = `
        UPDATE tags SET name=$1, display_order=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, tag.Name, tag.DisplayOrder, tag.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	const query = `
        SELECT id, name, display_order, created_at, updated_at
        FROM tags WHERE id=$1`
	var tag domain.Tag
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.Name,
		&tag.DisplayOrder,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	const query = `
        SELECT id, name, display_order, created_at, updated_at
        FROM tags ORDER BY display_order ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(
			&tag.ID,
			&tag.Name,
			&tag.DisplayOrder,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, rows.Err()
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tags WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tagRepository) MaxDisplayOrder(ctx context.Context) (int, error) {
	var max int
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(display_order), 0) FROM tags`).Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// SwapDisplayOrder exchanges the display_order of two tags in one transaction.
func (r *tagRepository) SwapDisplayOrder(ctx context.Context, a, b *domain.Tag) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE tags SET display_order=$1, updated_at=NOW() WHERE id=$2`, b.DisplayOrder, a.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE tags SET display_order=$1, updated_at=NOW() WHERE id=$2`, a.DisplayOrder, b.ID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	a.DisplayOrder, b.DisplayOrder = b.DisplayOrder, a.DisplayOrder
	return nil
}
