package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/srm-logistics/delivery-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var adminColumns = []string{"id", "username", "full_name", "email", "password_hash"}

type adminRepo struct {
	base
}

func NewAdminRepo(db *sqlx.DB) *adminRepo {
	return &adminRepo{base: newBase(db)}
}

func (r *adminRepo) GetAdminByUsername(ctx context.Context, username string) (entities.Admin, error) {
	query, args := r.qb.Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"username": username}).
		MustSql()

	var admin Admin
	err := r.getContext(ctx, &admin, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Admin{}, entities.ErrAdminNotFound
	}
	if err != nil {
		return entities.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return AdminToEntity(admin), nil
}
