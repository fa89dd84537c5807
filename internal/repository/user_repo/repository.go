package user_repo

import (
	"context"
	"errors"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table   = "users"
	colID   = "id"
	colName = "name"
	colUsed = "used"

	uniqueViolationCode = "23505"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateUser - создает нового участника.
// Дубликат имени возвращает repository.ErrAlreadyExists
func (r *repo) CreateUser(ctx context.Context, name string) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName).
		Values(name).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return 0, repository.ErrAlreadyExists
		}
		return 0, err
	}

	return id, nil
}

// GetUser - возвращает участника по ID
func (r *repo) GetUser(ctx context.Context, id int) (*model.User, error) {
	return r.getUser(ctx, id, false)
}

// GetUserForUpdate - возвращает участника с блокировкой строки FOR UPDATE.
// Вызывается только внутри транзакции спина
func (r *repo) GetUserForUpdate(ctx context.Context, id int) (*model.User, error) {
	return r.getUser(ctx, id, true)
}

func (r *repo) getUser(ctx context.Context, id int, forUpdate bool) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colUsed).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.Name, &user.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

// ListUsers - возвращает всех участников
func (r *repo) ListUsers(ctx context.Context) ([]model.User, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colUsed).
		From(table).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Used); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// MarkUsed - помечает участника использовавшим свою попытку
func (r *repo) MarkUsed(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colUsed, true).
		Where(sq.Eq{colID: id}).
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

// ResetUsed - массовый сброс: все участники снова могут крутить колесо
func (r *repo) ResetUsed(ctx context.Context) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colUsed, false).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// DeleteUser - удаляет участника по ID
func (r *repo) DeleteUser(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}
