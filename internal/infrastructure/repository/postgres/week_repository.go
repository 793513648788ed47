package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-api/internal/domain/week"
	qb "github.com/pickemhq/pickem-api/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

type weekTableModel struct {
	ID        int       `db:"id"`
	StartDate time.Time `db:"start_date"`
}

func (r *WeekRepository) ListOrdered(ctx context.Context) ([]week.Week, error) {
	query, args, err := qb.Select("*").From("weeks").
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weeks: %w", err)
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, week.Week{ID: row.ID, StartDate: row.StartDate})
	}

	return out, nil
}
