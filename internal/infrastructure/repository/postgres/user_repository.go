package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pickemhq/pickem-api/internal/domain/user"
	qb "github.com/pickemhq/pickem-api/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("username", strings.TrimSpace(username))).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by username query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by username: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by id query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by id: %w", err)
	}

	return userFromRow(row), true, nil
}

func (r *UserRepository) Create(ctx context.Context, username string) (user.User, error) {
	query, args, err := qb.InsertInto("users").
		Columns("username").
		Values(strings.TrimSpace(username)).
		Suffix("RETURNING id, username, created_at").
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrDuplicateUsername
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	return userFromRow(row), nil
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:        row.ID,
		Username:  row.Username,
		CreatedAt: row.CreatedAt,
	}
}
