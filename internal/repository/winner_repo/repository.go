package winner_repo

import (
	"context"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table     = "winners"
	colID     = "id"
	colName   = "name"
	colPrize  = "prize"
	colDate   = "date"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewWinnerRepository(dbc *pgxpool.Pool, getter *trmpgx.CtxGetter) repository.WinnerRepository {
	return &repo{
		dbc:    dbc,
		getter: getter,
	}
}

// CreateWinner - добавляет запись о выигрыше.
// Возвращает ID созданной записи
func (r *repo) CreateWinner(ctx context.Context, record *model.WinnerRecord) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colName, colPrize, colDate).
		Values(record.Name, record.Prize, record.Date).
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

// ListRecent - последние записи, новые первыми
func (r *repo) ListRecent(ctx context.Context, limit int) ([]model.WinnerRecord, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colPrize, colDate).
		From(table).
		OrderBy(colID + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

// ListAll - все записи по убыванию даты (для выгрузки CSV)
func (r *repo) ListAll(ctx context.Context) ([]model.WinnerRecord, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colPrize, colDate).
		From(table).
		OrderBy(colDate + " DESC").
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

// DeleteAll - очищает историю выигрышей
func (r *repo) DeleteAll(ctx context.Context) error {
	// Формируем запрос
	query := sq.Delete(table).
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

func (r *repo) list(ctx context.Context, query sq.SelectBuilder) ([]model.WinnerRecord, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWinners(rows)
}

func scanWinners(rows pgx.Rows) ([]model.WinnerRecord, error) {
	var records []model.WinnerRecord
	for rows.Next() {
		var rec model.WinnerRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Prize, &rec.Date); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
