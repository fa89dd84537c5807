package spin

import (
	"errors"

	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Количество последних победителей в сводках
const recentWinnersLimit = 5

var (
	// ErrIneligible - участник не существует, уже крутил колесо
	// или призов не осталось. Выбор отклонён, состояние не меняется
	ErrIneligible = errors.New("user is not eligible for the wheel")
	// ErrAlreadySpun - повторный спин, пойманный на коммите
	ErrAlreadySpun = errors.New("user has already spun")
	// ErrNoPrizesLeft - пул призов пуст на момент розыгрыша
	ErrNoPrizesLeft = errors.New("no prizes left")
	// ErrConflict - коммит спина не применился, состояние не тронуто
	ErrConflict = errors.New("spin could not be committed")
	// ErrNoSession - привязка участника к спину не найдена
	ErrNoSession = errors.New("no active spin session")
)

type serv struct {
	userRepo    repository.UserRepository
	prizeRepo   repository.PrizeRepository
	winnerRepo  repository.WinnerRepository
	sessionRepo repository.SessionRepository
	txManager   trm.Manager
	rnd         Rand
}

// NewSpinService Создать движок колеса призов.
// Источник случайности передаётся явно, чтобы тесты могли его подменить
func NewSpinService(
	userRepo repository.UserRepository,
	prizeRepo repository.PrizeRepository,
	winnerRepo repository.WinnerRepository,
	sessionRepo repository.SessionRepository,
	txManager trm.Manager,
	rnd Rand,
) service.SpinService {
	return &serv{
		userRepo:    userRepo,
		prizeRepo:   prizeRepo,
		winnerRepo:  winnerRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		rnd:         rnd,
	}
}
