package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"voice-assistant-api/internal/domain"
	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/repository"
)

var _ repository.InteractionRepository = (*interactionRepo)(nil)

type interactionRepo struct {
	pool *pgxpool.Pool
}

func NewInteractionRepo(pool *pgxpool.Pool) *interactionRepo {
	return &interactionRepo{pool: pool}
}

func (r *interactionRepo) Save(ctx context.Context, it *model.Interaction) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = time.Now()
	}

	const q = `
INSERT INTO interactions (id, user_id, transcript, answer, context_used, created_at)
VALUES ($1, $2, $3, $4, $5, $6);`

	_, err := r.pool.Exec(ctx, q, it.ID, it.UserID, it.Transcript, it.Answer, string(it.ContextUsed), it.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *interactionRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}

	const q = `
SELECT id, user_id, transcript, answer, context_used, created_at
FROM interactions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;`

	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Interaction
	for rows.Next() {
		var it model.Interaction
		var used string
		if err := rows.Scan(&it.ID, &it.UserID, &it.Transcript, &it.Answer, &used, &it.CreatedAt); err != nil {
			return nil, err
		}
		it.ContextUsed = model.ContextSource(used)
		out = append(out, &it)
	}
	return out, rows.Err()
}
