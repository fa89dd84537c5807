package spin

import (
	"context"
)

// Reset массовый сброс: все участники снова могут крутить колесо,
// история выигрышей очищается. Остатки призов не трогаются.
//
// Выполняется одной транзакцией: наблюдатель не увидит сброшенных
// участников при непустой истории и наоборот. Параллельный спин
// держит блокировку своей строки участника, поэтому сброс дождётся
// его коммита
func (s *serv) Reset(ctx context.Context) error {
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.userRepo.ResetUsed(txCtx); err != nil {
			return err
		}

		return s.winnerRepo.DeleteAll(txCtx)
	})
}
