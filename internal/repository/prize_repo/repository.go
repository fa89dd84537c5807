package prize_repo

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
	table       = "prizes"
	colID       = "id"
	colAmount   = "amount"
	colQuantity = "quantity"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPrizeRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.PrizeRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// ListTiers - возвращает все позиции инвентаря, включая исчерпанные
func (r *repo) ListTiers(ctx context.Context) ([]model.PrizeTier, error) {
	// Формируем запрос
	query := sq.Select(colID, colAmount, colQuantity).
		From(table).
		OrderBy(colAmount).
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

	return scanTiers(rows)
}

// AvailableTiers - возвращает позиции с ненулевым остатком
func (r *repo) AvailableTiers(ctx context.Context) ([]model.PrizeTier, error) {
	return r.availableTiers(ctx, false)
}

// AvailableTiersForUpdate - то же, но с блокировкой строк FOR UPDATE.
// Вызывается только внутри транзакции спина
func (r *repo) AvailableTiersForUpdate(ctx context.Context) ([]model.PrizeTier, error) {
	return r.availableTiers(ctx, true)
}

func (r *repo) availableTiers(ctx context.Context, forUpdate bool) ([]model.PrizeTier, error) {
	// Формируем запрос
	query := sq.Select(colID, colAmount, colQuantity).
		From(table).
		Where(sq.Gt{colQuantity: 0}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTiers(rows)
}

// RemainingTotal - сумма остатков по всем позициям
func (r *repo) RemainingTotal(ctx context.Context) (int, error) {
	// Формируем запрос
	query := sq.Select("COALESCE(SUM(" + colQuantity + "), 0)").
		From(table).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// Decrement - уменьшает на единицу остаток ровно одной позиции
// с указанным номиналом и остатком больше нуля.
// Возвращает false, если такой позиции нет
func (r *repo) Decrement(ctx context.Context, amount int) (bool, error) {
	// Формируем запрос: подзапрос нужен, чтобы задеть ровно одну строку
	query := sq.Update(table).
		Set(colQuantity, sq.Expr(colQuantity+" - 1")).
		Where(sq.Expr(
			colID+" = (SELECT "+colID+" FROM "+table+
				" WHERE "+colAmount+" = ? AND "+colQuantity+" > 0 ORDER BY "+colID+" LIMIT 1)",
			amount,
		)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// CreateTier - добавляет позицию инвентаря.
// Возвращает ID созданной позиции
func (r *repo) CreateTier(ctx context.Context, amount, quantity int) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colAmount, colQuantity).
		Values(amount, quantity).
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

// DeleteTier - удаляет позицию инвентаря по ID
func (r *repo) DeleteTier(ctx context.Context, id int) error {
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

func scanTiers(rows pgx.Rows) ([]model.PrizeTier, error) {
	var tiers []model.PrizeTier
	for rows.Next() {
		var t model.PrizeTier
		if err := rows.Scan(&t.ID, &t.Amount, &t.Quantity); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return tiers, nil
}
