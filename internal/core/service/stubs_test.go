package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/taplejung/menu-system/internal/core/domain"
)

type stubStaffRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*domain.StaffAccount
}

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{byID: make(map[int64]*domain.StaffAccount)}
}

func cloneAccount(a *domain.StaffAccount) *domain.StaffAccount {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubStaffRepo) FindByEmail(_ context.Context, email string) (*domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubStaffRepo) FindByID(_ context.Context, id int64) (*domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubStaffRepo) List(_ context.Context) ([]domain.StaffAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StaffAccount, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if a, ok := r.byID[id]; ok {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubStaffRepo) Create(_ context.Context, account *domain.StaffAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == account.Email {
			return 0, domain.ErrConflict
		}
	}
	r.nextID++
	c := cloneAccount(account)
	c.ID = r.nextID
	r.byID[c.ID] = c
	return c.ID, nil
}

func (r *stubStaffRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.byID[id]; ok {
		a.PasswordHash = hash
	}
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// stubHasher prefixes the password, which is enough to tell a hash from the
// plain text in assertions.
type stubHasher struct{}

func (stubHasher) Hash(_ context.Context, plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (stubHasher) Verify(_ context.Context, plain, digest string) (bool, error) {
	return digest == "hashed:"+plain, nil
}

type stubSessionStore struct {
	mu       sync.Mutex
	n        int
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, userID int64, role domain.Role, name string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	sess := &domain.Session{Token: "tok-" + strconv.Itoa(s.n), UserID: userID, Role: role, Name: name}
	s.sessions[sess.Token] = sess
	return sess, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, ev domain.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
	return a.err
}

func (a *stubAudit) actions() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	names := make([]string, len(a.events))
	for i, ev := range a.events {
		names[i] = string(ev.Action)
	}
	return strings.Join(names, ",")
}

type stubMenuRepo struct {
	mu      sync.Mutex
	nextID  int64
	items   map[int64]domain.MenuItem
	listErr error
	// listed, when set, is returned as is to stand in for a store collation.
	listed []domain.MenuItem
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[int64]domain.MenuItem)}
}

func (r *stubMenuRepo) List(_ context.Context) ([]domain.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	if r.listed != nil {
		return r.listed, nil
	}
	out := make([]domain.MenuItem, 0, len(r.items))
	for id := int64(1); id <= r.nextID; id++ {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	// ORDER BY category, name under a binary collation.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *stubMenuRepo) Create(_ context.Context, item *domain.MenuItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	it := *item
	it.ID = r.nextID
	r.items[it.ID] = it
	return it.ID, nil
}

func (r *stubMenuRepo) CreateBatch(ctx context.Context, items []domain.MenuItem) error {
	for i := range items {
		if _, err := r.Create(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubMenuRepo) Update(_ context.Context, item *domain.MenuItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return 0, nil
	}
	r.items[item.ID] = *item
	return 1, nil
}

func (r *stubMenuRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

var errStore = errors.New("store unavailable")

func ptr[T any](v T) *T { return &v }
