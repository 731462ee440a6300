package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"

	"voice-assistant-api/internal/domain/model"
	"voice-assistant-api/internal/domain/ports/repository"
)

var _ repository.KnowledgeRepository = (*knowledgeRepo)(nil)

type knowledgeRepo struct {
	pool *pgxpool.Pool
}

func NewKnowledgeRepo(pool *pgxpool.Pool) *knowledgeRepo {
	return &knowledgeRepo{pool: pool}
}

// SearchByKeywords builds a disjunctive ILIKE predicate over the content
// column. No explicit ranking: textual match is a fallback, not a
// relevance-ranked retrieval, so rows come back in store order.
func (r *knowledgeRepo) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*model.KnowledgeDocument, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}

	preds := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)+1)
	for i, kw := range keywords {
		preds = append(preds, fmt.Sprintf("content ILIKE '%%' || $%d || '%%'", i+1))
		args = append(args, kw)
	}
	args = append(args, limit)

	q := fmt.Sprintf(
		`SELECT id, title, content, created_at FROM knowledge_base WHERE %s LIMIT $%d;`,
		strings.Join(preds, " OR "), len(args),
	)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*model.KnowledgeDocument
	for rows.Next() {
		var d model.KnowledgeDocument
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}
