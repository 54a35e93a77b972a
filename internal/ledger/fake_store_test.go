package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rai-ahmadfraz/split-it-api/internal/events"
	"github.com/rai-ahmadfraz/split-it-api/internal/models"
	"github.com/rai-ahmadfraz/split-it-api/internal/storage"
)

// fakeStore is an in-memory Store. Writes inside RunInTx are staged and only
// applied when the callback succeeds.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]string
	expenses []models.Expense
	shares   []models.Share

	credits    []models.CounterpartyTotal
	debits     []models.CounterpartyTotal
	shared     []models.SharedExpenseRow
	members    []models.MemberRow
	queryErr   error
	calls      []string
	memberArgs []string

	// beforeDebits runs once, unlocked, at the start of the next QueryDebits.
	beforeDebits func()
}

func newFakeStore(users ...string) *fakeStore {
	s := &fakeStore{users: make(map[string]string)}
	for _, u := range users {
		s.users[u] = u
	}
	return s
}

func (s *fakeStore) record(call string) {
	s.calls = append(s.calls, call)
}

type fakeTx struct {
	store    *fakeStore
	expenses []models.Expense
	shares   []models.Share
}

func (t *fakeTx) InsertExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	for _, list := range [][]models.Expense{t.store.expenses, t.expenses} {
		for _, existing := range list {
			if existing.CreatorID == e.CreatorID && existing.Name == e.Name {
				return fmt.Errorf("insert: %w", storage.ErrDuplicateName)
			}
		}
	}
	if _, ok := t.store.users[e.CreatorID]; !ok {
		return fmt.Errorf("insert: %w", storage.ErrUnknownPayer)
	}
	if _, ok := t.store.users[e.PayerID]; !ok {
		return fmt.Errorf("insert: %w", storage.ErrUnknownPayer)
	}
	t.expenses = append(t.expenses, *e)
	return nil
}

func (t *fakeTx) InsertShares(ctx context.Context, shares []models.Share) error {
	for _, sh := range shares {
		if _, ok := t.store.users[sh.UserID]; !ok {
			return fmt.Errorf("insert share: %w", storage.ErrUnknownParticipant)
		}
		t.shares = append(t.shares, sh)
	}
	return nil
}

func (s *fakeStore) RunInTx(ctx context.Context, fn func(tx storage.ExpenseTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("RunInTx")

	tx := &fakeTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	s.expenses = append(s.expenses, tx.expenses...)
	s.shares = append(s.shares, tx.shares...)
	return nil
}

func (s *fakeStore) FindExpenseByNameAndCreator(ctx context.Context, name, creatorID string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("FindExpenseByNameAndCreator")

	for _, e := range s.expenses {
		if e.Name == name && e.CreatorID == creatorID {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) GetExpense(ctx context.Context, id string) (*models.Expense, []models.Share, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("GetExpense")

	for _, e := range s.expenses {
		if e.ID == id {
			e := e
			var shares []models.Share
			for _, sh := range s.shares {
				if sh.ExpenseID == id {
					shares = append(shares, sh)
				}
			}
			return &e, shares, nil
		}
	}
	return nil, nil, fmt.Errorf("expense %s: %w", id, storage.ErrNotFound)
}

func (s *fakeStore) QueryCredits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("QueryCredits")
	return s.credits, s.queryErr
}

func (s *fakeStore) QueryDebits(ctx context.Context, userID string) ([]models.CounterpartyTotal, error) {
	if hook := s.beforeDebits; hook != nil {
		s.beforeDebits = nil
		hook()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("QueryDebits")
	return s.debits, s.queryErr
}

func (s *fakeStore) QuerySharedExpenses(ctx context.Context, userID, friendID string) ([]models.SharedExpenseRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("QuerySharedExpenses")
	return s.shared, s.queryErr
}

func (s *fakeStore) QueryMembersByExpenseIDs(ctx context.Context, ids []string) ([]models.MemberRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record("QueryMembersByExpenseIDs")
	s.memberArgs = ids
	return s.members, s.queryErr
}

// fakeCache is an in-memory BalanceCache with per-user versions.
type fakeCache struct {
	entries     map[string]*models.NetBalances
	versions    map[string]int64
	invalidated []string
	sets        int
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries:  make(map[string]*models.NetBalances),
		versions: make(map[string]int64),
	}
}

func (c *fakeCache) Get(ctx context.Context, userID string) (*models.NetBalances, int64, error) {
	if c.err != nil {
		return nil, 0, c.err
	}
	return c.entries[userID], c.versions[userID], nil
}

func (c *fakeCache) Set(ctx context.Context, userID string, b *models.NetBalances, version int64) error {
	if c.err != nil {
		return c.err
	}
	c.sets++
	if c.versions[userID] != version {
		return nil
	}
	c.entries[userID] = b
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, userIDs ...string) error {
	c.invalidated = append(c.invalidated, userIDs...)
	for _, id := range userIDs {
		c.versions[id]++
		delete(c.entries, id)
	}
	return c.err
}

type fakePublisher struct {
	published []events.ExpenseCreated
	err       error
}

func (p *fakePublisher) PublishExpenseCreated(ctx context.Context, e events.ExpenseCreated) error {
	p.published = append(p.published, e)
	return p.err
}
