// Package auth_repo provides the PostgreSQL repository for user accounts.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/domain/auth"
	"retailhub/internal/infrastructure/storage/postgres"
)

const usersTable = "sys_users"

// UserRepo is the PostgreSQL repository for users.
type UserRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

var _ auth.Repository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[auth.User](),
	}
}

func (r *UserRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u *auth.User) error {
	data := postgres.StructToMap(u)
	rowData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			rowData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(usersTable).
		SetMap(rowData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": userID}, userID.String())
}

// GetByUsername retrieves a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.getWhere(ctx, squirrel.Eq{"username": username}, username)
}

func (r *UserRepo) getWhere(ctx context.Context, cond squirrel.Sqlizer, key string) (*auth.User, error) {
	u := &auth.User{}

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(usersTable).
		Where(cond).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), u, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(usersTable, key)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// Update modifies a user with optimistic locking.
func (r *UserRepo) Update(ctx context.Context, u *auth.User) error {
	data := postgres.StructToMap(u)

	rowData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			rowData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(usersTable).
		SetMap(rowData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": u.ID}).
		Where(squirrel.Eq{"version": u.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(usersTable, u.ID.String())
	}

	return nil
}
