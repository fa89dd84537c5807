package spin

import (
	"context"
	"errors"
	mrand "math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// memStore - хранилище в памяти, реализует все репозитории движка.
// Атомарность транзакций обеспечивает fakeTxManager
type memStore struct {
	mu       sync.Mutex
	users    map[int]*model.User
	tiers    map[int]*model.PrizeTier
	winners  []model.WinnerRecord
	sessions map[string]model.SpinSession

	nextUserID   int
	nextTierID   int
	nextWinnerID int
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[int]*model.User),
		tiers:        make(map[int]*model.PrizeTier),
		sessions:     make(map[string]model.SpinSession),
		nextUserID:   1,
		nextTierID:   1,
		nextWinnerID: 1,
	}
}

func (m *memStore) CreateUser(_ context.Context, name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == name {
			return 0, repository.ErrAlreadyExists
		}
	}
	id := m.nextUserID
	m.nextUserID++
	m.users[id] = &model.User{ID: id, Name: name}
	return id, nil
}

func (m *memStore) GetUser(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserForUpdate(ctx context.Context, id int) (*model.User, error) {
	return m.GetUser(ctx, id)
}

func (m *memStore) ListUsers(_ context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) MarkUsed(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Used = true
	return nil
}

func (m *memStore) ResetUsed(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		u.Used = false
	}
	return nil
}

func (m *memStore) DeleteUser(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	return nil
}

func (m *memStore) listTiers(onlyAvailable bool) []model.PrizeTier {
	out := make([]model.PrizeTier, 0, len(m.tiers))
	for _, t := range m.tiers {
		if onlyAvailable && t.Quantity <= 0 {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memStore) ListTiers(_ context.Context) ([]model.PrizeTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listTiers(false), nil
}

func (m *memStore) AvailableTiers(_ context.Context) ([]model.PrizeTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listTiers(true), nil
}

func (m *memStore) AvailableTiersForUpdate(ctx context.Context) ([]model.PrizeTier, error) {
	return m.AvailableTiers(ctx)
}

func (m *memStore) RemainingTotal(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, t := range m.tiers {
		total += t.Quantity
	}
	return total, nil
}

func (m *memStore) Decrement(_ context.Context, amount int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var target *model.PrizeTier
	for _, t := range m.listTiers(true) {
		if t.Amount == amount {
			target = m.tiers[t.ID]
			break
		}
	}
	if target == nil {
		return false, nil
	}
	target.Quantity--
	return true, nil
}

func (m *memStore) CreateTier(_ context.Context, amount, quantity int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextTierID
	m.nextTierID++
	m.tiers[id] = &model.PrizeTier{ID: id, Amount: amount, Quantity: quantity}
	return id, nil
}

func (m *memStore) DeleteTier(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tiers, id)
	return nil
}

func (m *memStore) CreateWinner(_ context.Context, record *model.WinnerRecord) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextWinnerID
	m.nextWinnerID++
	rec := *record
	rec.ID = id
	m.winners = append(m.winners, rec)
	return id, nil
}

func (m *memStore) ListRecent(_ context.Context, limit int) ([]model.WinnerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WinnerRecord, 0, limit)
	for i := len(m.winners) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.winners[i])
	}
	return out, nil
}

func (m *memStore) ListAll(_ context.Context) ([]model.WinnerRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.WinnerRecord, len(m.winners))
	copy(out, m.winners)
	return out, nil
}

func (m *memStore) DeleteAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.winners = nil
	return nil
}

func (m *memStore) CreateSession(_ context.Context, session *model.SpinSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = *session
	return nil
}

func (m *memStore) GetSession(_ context.Context, sessionID string) (*model.SpinSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *memStore) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	return nil
}

// fakeTxManager сериализует транзакции мьютексом,
// как блокировки строк в настоящей базе
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

type seededRand struct {
	mu sync.Mutex
	r  *mrand.Rand
}

func newSeededRand(seed int64) *seededRand {
	return &seededRand{r: mrand.New(mrand.NewSource(seed))}
}

func (s *seededRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Intn(n)
}

func newTestService(store *memStore) *serv {
	return &serv{
		userRepo:    store,
		prizeRepo:   store,
		winnerRepo:  store,
		sessionRepo: store,
		txManager:   &fakeTxManager{},
		rnd:         newSeededRand(1),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	t.Run("creates user", func(t *testing.T) {
		id, err := s.Register(ctx, "  Alice  ")
		if err != nil {
			t.Fatalf("Register: %v", err)
		}
		u, err := store.GetUser(ctx, id)
		if err != nil {
			t.Fatalf("GetUser: %v", err)
		}
		if u.Name != "Alice" {
			t.Errorf("expected trimmed name Alice, got %q", u.Name)
		}
		if u.Used {
			t.Error("new user must not be marked used")
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		if _, err := s.Register(ctx, "   "); err == nil {
			t.Fatal("expected error for blank name")
		}
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		_, err := s.Register(ctx, "Alice")
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestSelectUser(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	aliceID, _ := store.CreateUser(ctx, "Alice")
	bobID, _ := store.CreateUser(ctx, "Bob")
	_ = store.MarkUsed(ctx, bobID)
	_, _ = store.CreateTier(ctx, 1000, 2)

	t.Run("binds eligible user", func(t *testing.T) {
		session, err := s.SelectUser(ctx, aliceID)
		if err != nil {
			t.Fatalf("SelectUser: %v", err)
		}
		if session.ID == "" {
			t.Error("expected non-empty session id")
		}
		if session.UserID != aliceID {
			t.Errorf("expected binding to user %d, got %d", aliceID, session.UserID)
		}
		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("session not persisted: %v", err)
		}
		if got.UserID != aliceID {
			t.Errorf("persisted binding user %d, want %d", got.UserID, aliceID)
		}
	})

	t.Run("rejects unknown user", func(t *testing.T) {
		if _, err := s.SelectUser(ctx, 999); !errors.Is(err, ErrIneligible) {
			t.Fatalf("expected ErrIneligible, got %v", err)
		}
	})

	t.Run("rejects user who already spun", func(t *testing.T) {
		if _, err := s.SelectUser(ctx, bobID); !errors.Is(err, ErrIneligible) {
			t.Fatalf("expected ErrIneligible, got %v", err)
		}
	})

	t.Run("rejects when pool is empty", func(t *testing.T) {
		empty := newMemStore()
		es := newTestService(empty)
		id, _ := empty.CreateUser(ctx, "Carol")
		if _, err := es.SelectUser(ctx, id); !errors.Is(err, ErrIneligible) {
			t.Fatalf("expected ErrIneligible, got %v", err)
		}
	})
}

func TestSpin(t *testing.T) {
	ctx := context.Background()

	t.Run("successful spin", func(t *testing.T) {
		store := newMemStore()
		s := newTestService(store)
		id, _ := store.CreateUser(ctx, "Alice")
		_, _ = store.CreateTier(ctx, 1000, 3)

		session, err := s.SelectUser(ctx, id)
		if err != nil {
			t.Fatalf("SelectUser: %v", err)
		}

		res, err := s.Spin(ctx, session.ID)
		if err != nil {
			t.Fatalf("Spin: %v", err)
		}
		if res.WonAmount != 1000 {
			t.Errorf("expected prize 1000, got %d", res.WonAmount)
		}

		u, _ := store.GetUser(ctx, id)
		if !u.Used {
			t.Error("winner must be marked used")
		}

		remaining, _ := store.RemainingTotal(ctx)
		if remaining != 2 {
			t.Errorf("expected 2 prizes remaining, got %d", remaining)
		}

		winners, _ := store.ListAll(ctx)
		if len(winners) != 1 {
			t.Fatalf("expected 1 winner record, got %d", len(winners))
		}
		if winners[0].Name != "Alice" || winners[0].Prize != 1000 {
			t.Errorf("unexpected winner record: %+v", winners[0])
		}
		if winners[0].Date.IsZero() {
			t.Error("winner date must be set")
		}

		if _, err := store.GetSession(ctx, session.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Error("binding must be removed after spin")
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		store := newMemStore()
		s := newTestService(store)
		if _, err := s.Spin(ctx, "no-such-session"); !errors.Is(err, ErrNoSession) {
			t.Fatalf("expected ErrNoSession, got %v", err)
		}
	})

	t.Run("stale binding of a spent user", func(t *testing.T) {
		store := newMemStore()
		s := newTestService(store)
		id, _ := store.CreateUser(ctx, "Alice")
		_, _ = store.CreateTier(ctx, 1000, 5)

		session, _ := s.SelectUser(ctx, id)
		// Участник тратит попытку между выбором и спином
		_ = store.MarkUsed(ctx, id)

		if _, err := s.Spin(ctx, session.ID); !errors.Is(err, ErrAlreadySpun) {
			t.Fatalf("expected ErrAlreadySpun, got %v", err)
		}

		if _, err := store.GetSession(ctx, session.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Error("binding must be removed even on refusal")
		}
		winners, _ := store.ListAll(ctx)
		if len(winners) != 0 {
			t.Errorf("refused spin must not record winners, got %d", len(winners))
		}
	})

	t.Run("last unit goes to exactly one of two bound users", func(t *testing.T) {
		store := newMemStore()
		s := newTestService(store)
		aliceID, _ := store.CreateUser(ctx, "Alice")
		bobID, _ := store.CreateUser(ctx, "Bob")
		_, _ = store.CreateTier(ctx, 5000, 1)

		// Оба участника успели привязаться, пока единица ещё была
		aliceSession, err := s.SelectUser(ctx, aliceID)
		if err != nil {
			t.Fatalf("SelectUser alice: %v", err)
		}
		bobSession, err := s.SelectUser(ctx, bobID)
		if err != nil {
			t.Fatalf("SelectUser bob: %v", err)
		}

		if _, err := s.Spin(ctx, aliceSession.ID); err != nil {
			t.Fatalf("first spin: %v", err)
		}
		if _, err := s.Spin(ctx, bobSession.ID); !errors.Is(err, ErrNoPrizesLeft) {
			t.Fatalf("expected ErrNoPrizesLeft, got %v", err)
		}

		remaining, _ := store.RemainingTotal(ctx)
		if remaining != 0 {
			t.Errorf("expected empty pool, got %d", remaining)
		}
		winners, _ := store.ListAll(ctx)
		if len(winners) != 1 {
			t.Errorf("expected exactly 1 winner, got %d", len(winners))
		}
	})
}

// TestSpinConcurrent: при N единицах призов и большем числе участников
// выигрывают ровно N, остальные получают отказ, пул не уходит в минус
func TestSpinConcurrent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	const totalPrizes = 20
	const numUsers = 40

	_, _ = store.CreateTier(ctx, 1000, 12)
	_, _ = store.CreateTier(ctx, 2000, 5)
	_, _ = store.CreateTier(ctx, 5000, 3)

	sessions := make([]string, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		id, err := store.CreateUser(ctx, "user"+string(rune('A'+i/26))+string(rune('a'+i%26)))
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		session, err := s.SelectUser(ctx, id)
		if err != nil {
			t.Fatalf("SelectUser: %v", err)
		}
		sessions = append(sessions, session.ID)
	}

	var wins, refused atomic.Int32
	var wg sync.WaitGroup
	for _, sessionID := range sessions {
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			_, err := s.Spin(ctx, sid)
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, ErrNoPrizesLeft):
				refused.Add(1)
			default:
				t.Errorf("unexpected spin error: %v", err)
			}
		}(sessionID)
	}
	wg.Wait()

	if wins.Load() != totalPrizes {
		t.Errorf("expected %d wins, got %d", totalPrizes, wins.Load())
	}
	if refused.Load() != numUsers-totalPrizes {
		t.Errorf("expected %d refusals, got %d", numUsers-totalPrizes, refused.Load())
	}

	remaining, _ := store.RemainingTotal(ctx)
	if remaining != 0 {
		t.Errorf("expected drained pool, got %d remaining", remaining)
	}
	winners, _ := store.ListAll(ctx)
	if len(winners) != totalPrizes {
		t.Errorf("expected %d winner records, got %d", totalPrizes, len(winners))
	}

	usedCount := 0
	users, _ := store.ListUsers(ctx)
	for _, u := range users {
		if u.Used {
			usedCount++
		}
	}
	if usedCount != totalPrizes {
		t.Errorf("expected %d used users, got %d", totalPrizes, usedCount)
	}
}

// TestDrawTierDistribution: шанс позиции пропорционален остатку
func TestDrawTierDistribution(t *testing.T) {
	s := &serv{rnd: newSeededRand(42)}

	tiers := []model.PrizeTier{
		{ID: 1, Amount: 100, Quantity: 1},
		{ID: 2, Amount: 200, Quantity: 9},
	}

	const draws = 100000
	hits := map[int]int{}
	for i := 0; i < draws; i++ {
		won := s.drawTier(tiers)
		hits[won.Amount]++
	}

	// Ожидаем 10% на 100 и 90% на 200, допуск 1.5 процентных пункта
	share := float64(hits[100]) / draws
	if share < 0.085 || share > 0.115 {
		t.Errorf("tier 100 share %.4f, want ~0.10", share)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	aliceID, _ := store.CreateUser(ctx, "Alice")
	_, _ = store.CreateUser(ctx, "Bob")
	_, _ = store.CreateTier(ctx, 1000, 3)

	session, _ := s.SelectUser(ctx, aliceID)
	if _, err := s.Spin(ctx, session.ID); err != nil {
		t.Fatalf("Spin: %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	users, _ := store.ListUsers(ctx)
	for _, u := range users {
		if u.Used {
			t.Errorf("user %q still marked used after reset", u.Name)
		}
	}

	winners, _ := store.ListAll(ctx)
	if len(winners) != 0 {
		t.Errorf("expected empty winner history, got %d", len(winners))
	}

	// Остатки призов сброс не трогает
	remaining, _ := store.RemainingTotal(ctx)
	if remaining != 2 {
		t.Errorf("expected 2 prizes remaining, got %d", remaining)
	}
}

func TestBoard(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	_, _ = store.CreateUser(ctx, "Alice")
	_, _ = store.CreateTier(ctx, 1000, 2)
	_, _ = store.CreateTier(ctx, 5000, 1)
	_, _ = store.CreateTier(ctx, 2000, 0)

	data, err := s.Board(ctx)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}

	if data.TierCount != 3 {
		t.Errorf("expected 3 tiers, got %d", data.TierCount)
	}
	if data.TotalRemaining != 3 {
		t.Errorf("expected 3 remaining, got %d", data.TotalRemaining)
	}
	if data.TotalPrizePool != 7000 {
		t.Errorf("expected pool 7000, got %d", data.TotalPrizePool)
	}
}

func TestWheel(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	s := newTestService(store)

	id, _ := store.CreateUser(ctx, "Alice")
	_, _ = store.CreateTier(ctx, 1000, 2)
	_, _ = store.CreateTier(ctx, 2000, 0)

	session, _ := s.SelectUser(ctx, id)

	data, err := s.Wheel(ctx, session.ID)
	if err != nil {
		t.Fatalf("Wheel: %v", err)
	}
	if data.User.ID != id {
		t.Errorf("expected bound user %d, got %d", id, data.User.ID)
	}
	// Пустые позиции на колесо не попадают
	if len(data.Tiers) != 1 || data.Tiers[0].Amount != 1000 {
		t.Errorf("unexpected tiers: %+v", data.Tiers)
	}

	if _, err := s.Wheel(ctx, "no-such-session"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
