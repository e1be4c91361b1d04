package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	tasks     *stubTaskRepo // backs FindByID's task list, like the real $lookup
	creates   int
	createErr error
	nextID    int
}

func newStubUserRepo(tasks *stubTaskRepo) *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User), tasks: tasks}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := cloneUser(u)
	clone.PasswordHash = ""
	if r.tasks != nil {
		owned, _ := r.tasks.FindAllForOwner(ctx, id, ports.TaskFilter{})
		for _, t := range owned {
			clone.Tasks = append(clone.Tasks, t.ID)
		}
	}
	return clone, nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubTaskRepo struct {
	byID      map[string]*domain.Task
	nextID    int
	createErr error
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{byID: make(map[string]*domain.Task)}
}

func cloneTask(t *domain.Task) *domain.Task {
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, ownerID string, task *domain.Task) (*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := cloneTask(task)
	clone.ID = fmt.Sprintf("task-%03d", r.nextID)
	clone.UserID = ownerID
	r.byID[clone.ID] = clone
	return cloneTask(clone), nil
}

func (r *stubTaskRepo) FindAllForOwner(_ context.Context, ownerID string, f ports.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.byID {
		if t.UserID != ownerID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, cloneTask(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// FindOneForOwner mirrors the real query: id and owner in the same filter.
func (r *stubTaskRepo) FindOneForOwner(_ context.Context, taskID, ownerID string) (*domain.Task, error) {
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *stubTaskRepo) UpdateForOwner(_ context.Context, taskID, ownerID string, p domain.TaskPatch) (*domain.Task, error) {
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		t.EndTime = *p.EndTime
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Tags != nil {
		t.Tags = *p.Tags
	}
	t.UpdatedAt = time.Now().UTC()
	return cloneTask(t), nil
}

func (r *stubTaskRepo) DeleteForOwner(_ context.Context, taskID, ownerID string) error {
	t, ok := r.byID[taskID]
	if !ok || t.UserID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.byID, taskID)
	return nil
}

func (r *stubTaskRepo) DeleteAllForOwner(_ context.Context, ownerID string) (int64, error) {
	var n int64
	for id, t := range r.byID {
		if t.UserID == ownerID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Token stubs
// ---------------------------------------------------------------------------

type stubIssuer struct {
	issued []domain.Identity
	err    error
}

func (s *stubIssuer) Issue(identity domain.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, identity)
	return "token-for-" + identity.UserID, nil
}

func (s *stubIssuer) TTL() time.Duration { return time.Hour }

type stubRevocations struct {
	tokens map[string]time.Time
	users  map[string]time.Duration
	err    error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{tokens: map[string]time.Time{}, users: map[string]time.Duration{}}
}

func (s *stubRevocations) RevokeToken(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.tokens[tokenID] = until
	return nil
}

func (s *stubRevocations) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.users[userID] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id domain.Identity) (bool, error) {
	_, tok := s.tokens[id.TokenID]
	_, usr := s.users[id.UserID]
	return tok || usr, s.err
}
