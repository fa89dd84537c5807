package admin

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
)

const dateLayout = "2006-01-02 15:04:05"

// ExportWinnersCSV пишет историю выигрышей в CSV, новые записи первыми
func (s *serv) ExportWinnersCSV(ctx context.Context, w io.Writer) error {
	winners, err := s.winnerRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Prize Amount", "Date Won"}); err != nil {
		return err
	}

	for _, rec := range winners {
		row := []string{
			rec.Name,
			strconv.Itoa(rec.Prize),
			rec.Date.Format(dateLayout),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
