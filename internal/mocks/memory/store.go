// Package memory provides in-memory repositories for tests. Uniqueness rules
// mirror the PostgreSQL indexes so races resolve the same way.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pgbee/internal/domain/entity"
	domainerrors "pgbee/internal/domain/errors"
	"pgbee/internal/domain/repository"
)

// Store holds users, roles and refresh sessions behind one mutex.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	roles    map[entity.RoleName]*entity.Role
	sessions map[string]*entity.RefreshSession
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*entity.User),
		roles:    make(map[entity.RoleName]*entity.Role),
		sessions: make(map[string]*entity.RefreshSession),
		now:      time.Now,
	}
}

func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }
func (s *Store) Roles() repository.RoleRepository { return (*roleRepo)(s) }
func (s *Store) Sessions() repository.RefreshSessionRepository { return (*sessionRepo)(s) }
func (s *Store) TransactionManager() repository.TransactionManager { return (*txManager)(s) }
func (s *Store) NewUserRepository() repository.UserRepository { return s.Users() }
func (s *Store) NewRoleRepository() repository.RoleRepository { return s.Roles() }
func (s *Store) NewRefreshSessionRepository() repository.RefreshSessionRepository { return s.Sessions() }

// SessionCount reports how many refresh sessions are stored.
func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// txManager runs fn against the shared store. There is no rollback.
type txManager Store

func (t *txManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn((*Store)(t))
}

type userRepo Store

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.withRole(u), nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return r.withRole(u), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domainerrors.NewDuplicateError("email")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.now()
	user.UpdatedAt = user.CreatedAt

	stored := *user
	stored.Role = nil
	r.users[user.ID] = &stored

	return nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}

	stored := *user
	stored.Role = nil
	stored.UpdatedAt = r.now()
	r.users[user.ID] = &stored

	return nil
}

func (r *userRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *userRepo) withRole(u *entity.User) *entity.User {
	out := *u
	for _, role := range r.roles {
		if role.ID == u.RoleID {
			cp := *role
			out.Role = &cp
		}
	}

	return &out
}

type roleRepo Store

func (r *roleRepo) FindByName(_ context.Context, name entity.RoleName) (*entity.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	role, ok := r.roles[name]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	cp := *role

	return &cp, nil
}

func (r *roleRepo) Create(_ context.Context, role *entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.roles[role.Name]; ok {
		role.ID = existing.ID

		return nil
	}

	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	cp := *role
	r.roles[role.Name] = &cp

	return nil
}

type sessionRepo Store

func (r *sessionRepo) Create(_ context.Context, session *entity.RefreshSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.TokenHash]; ok {
		return domainerrors.NewDuplicateError("token_hash")
	}
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = r.now()
	cp := *session
	r.sessions[session.TokenHash] = &cp

	return nil
}

func (r *sessionRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrRefreshSessionNotFound
	}
	cp := *session

	return &cp, nil
}

func (r *sessionRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[tokenHash]; !ok {
		return repository.ErrRefreshSessionNotFound
	}
	delete(r.sessions, tokenHash)

	return nil
}

func (r *sessionRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}

	return nil
}

func (r *sessionRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	now := r.now()
	for hash, session := range r.sessions {
		if !session.ExpiresAt.After(now) {
			delete(r.sessions, hash)
			n++
		}
	}

	return n, nil
}
