package admin_repo

import (
	"context"
	"errors"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "admins"
	colID           = "id"
	colUsername     = "username"
	colPasswordHash = "password_hash"
	colSalt         = "salt"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAdminRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.AdminRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// GetAdminByUsername - возвращает учётку администратора по имени
func (r *repo) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	// Формируем запрос
	query := sq.Select(colID, colUsername, colPasswordHash, colSalt).
		From(table).
		Where(sq.Eq{colUsername: username}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.Salt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &admin, nil
}

// CreateAdmin - создает учётку администратора.
// Возвращает ID созданной учётки
func (r *repo) CreateAdmin(ctx context.Context, admin *model.Admin) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUsername, colPasswordHash, colSalt).
		Values(admin.Username, admin.PasswordHash, admin.Salt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdatePassword - меняет хэш и соль пароля администратора
func (r *repo) UpdatePassword(ctx context.Context, username, passwordHash, salt string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colPasswordHash, passwordHash).
		Set(colSalt, salt).
		Where(sq.Eq{colUsername: username}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}
