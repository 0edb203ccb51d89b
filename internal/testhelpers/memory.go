// Package testhelpers provides in-memory repositories and fakes for tests.
package testhelpers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/Dhaval523/WorkJunction/internal/repository"
	"github.com/Dhaval523/WorkJunction/internal/verification"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Store backs all memory repositories with one lock so cross-table reads are consistent.
type Store struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	workers       map[uuid.UUID]models.Worker
	services      map[uuid.UUID]models.Service
	verifications []models.Verification
	clock         time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]models.User),
		workers:  make(map[uuid.UUID]models.Worker),
		services: make(map[uuid.UUID]models.Service),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s} }
func (s *Store) Workers() *WorkerRepo             { return &WorkerRepo{s} }
func (s *Store) Services() *ServiceRepo           { return &ServiceRepo{s} }
func (s *Store) Verifications() *VerificationRepo { return &VerificationRepo{s} }

// PutWorker inserts or replaces a worker row directly.
func (s *Store) PutWorker(w models.Worker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.tick()
	}
	s.workers[w.ID] = w
}

// PutUser inserts or replaces a user row directly.
func (s *Store) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// AuditRows returns a copy of every verification row.
func (s *Store) AuditRows() []models.Verification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Verification(nil), s.verifications...)
}

type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, user *models.User, worker *models.Worker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := r.s.tick()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	if worker != nil {
		if worker.ID == uuid.Nil {
			worker.ID = uuid.New()
		}
		worker.UserID = user.ID
		worker.CreatedAt, worker.UpdatedAt = now, now
		r.s.workers[worker.ID] = *worker
	}
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepo) PhoneExists(_ context.Context, phone string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) SetOTP(_ context.Context, id uuid.UUID, hash string, expiresAt time.Time) error {
	return r.mutate(id, func(u *models.User) {
		u.OTPHash = &hash
		u.OTPExpiresAt = &expiresAt
	})
}

func (r *UserRepo) MarkMobileVerified(_ context.Context, id uuid.UUID) error {
	return r.mutate(id, func(u *models.User) {
		u.IsMobileVerified = true
		u.OTPHash = nil
		u.OTPExpiresAt = nil
	})
}

func (r *UserRepo) mutate(id uuid.UUID, fn func(*models.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = r.s.tick()
	r.s.users[id] = u
	return nil
}

func (r *UserRepo) FindMatching(_ context.Context, ids []uuid.UUID, m repository.UserMatch) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		u, ok := r.s.users[id]
		if !ok {
			continue
		}
		if m.Name != "" && !containsFold(u.FullName, m.Name) {
			continue
		}
		if m.City != "" && !containsFold(u.Address.City, m.City) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

type WorkerRepo struct{ s *Store }

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

func (r *WorkerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (r *WorkerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.workers {
		if w.UserID == userID {
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *WorkerRepo) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for col, v := range fields {
		applyWorkerColumn(&w, col, v)
	}
	w.UpdatedAt = r.s.tick()
	r.s.workers[id] = w
	return &w, nil
}

func applyWorkerColumn(w *models.Worker, col string, v any) {
	switch col {
	case models.ColCategory:
		w.Category = models.Category(v.(string))
	case models.ColSkills:
		w.Skills = append(pq.StringArray{}, v.(pq.StringArray)...)
	case models.ColExperience:
		w.Experience = v.(int)
	case models.ColHourlyRate:
		if v == nil {
			w.HourlyRate = nil
		} else {
			f := v.(float64)
			w.HourlyRate = &f
		}
	case models.ColBio:
		w.Bio = v.(string)
	case models.ColLanguagesSpoken:
		w.LanguagesSpoken = append(pq.StringArray{}, v.(pq.StringArray)...)
	case models.ColVerificationStage:
		w.VerificationStage = verification.Stage(v.(string))
	case models.ColAadharDocURL:
		s := v.(string)
		w.Verification.AadharDocURL = &s
	case models.ColPoliceDocURL:
		s := v.(string)
		w.Verification.PoliceDocURL = &s
	case models.ColIsAadharDocVerified:
		w.Verification.IsAadharDocVerified = v.(bool)
	case models.ColIsPoliceDocVerified:
		w.Verification.IsPoliceDocVerified = v.(bool)
	default:
		panic("testhelpers: unknown worker column " + col)
	}
}

func (r *WorkerRepo) Search(_ context.Context, f repository.WorkerFilter) ([]models.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Worker
	for _, w := range r.s.workers {
		if f.Category != "" && string(w.Category) != f.Category {
			continue
		}
		if len(f.Skills) > 0 && !overlaps(w.Skills, f.Skills) {
			continue
		}
		if len(f.LanguagesSpoken) > 0 && !overlaps(w.LanguagesSpoken, f.LanguagesSpoken) {
			continue
		}
		if f.MinExperience != nil && w.Experience < *f.MinExperience {
			continue
		}
		if f.MinRate != nil && (w.HourlyRate == nil || *w.HourlyRate < *f.MinRate) {
			continue
		}
		if f.MaxRate != nil && (w.HourlyRate == nil || *w.HourlyRate > *f.MaxRate) {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func overlaps(have []string, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (r *WorkerRepo) ListByStage(_ context.Context, stage verification.Stage, limit, offset int) ([]models.Worker, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []models.Worker
	for _, w := range r.s.workers {
		if stage == "" || w.VerificationStage == stage {
			all = append(all, w)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].UpdatedAt.Before(all[j].UpdatedAt) })
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Worker{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type ServiceRepo struct{ s *Store }

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

func (r *ServiceRepo) Create(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	now := r.s.tick()
	svc.CreatedAt, svc.UpdatedAt = now, now
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *ServiceRepo) ListByWorker(_ context.Context, workerID uuid.UUID) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Service
	for _, svc := range r.s.services {
		if svc.WorkerID == workerID {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ServiceRepo) FindOwned(_ context.Context, id, workerID uuid.UUID) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.WorkerID != workerID {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

func (r *ServiceRepo) UpdateOwned(_ context.Context, id, workerID uuid.UUID, fields map[string]any) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.WorkerID != workerID {
		return nil, repository.ErrNotFound
	}
	for col, v := range fields {
		switch col {
		case "name":
			svc.Name = v.(string)
		case "description":
			svc.Description = v.(string)
		case "category":
			svc.Category = v.(string)
		case "hourly_rate":
			svc.HourlyRate = v.(float64)
		default:
			panic("testhelpers: unknown service column " + col)
		}
	}
	svc.UpdatedAt = r.s.tick()
	r.s.services[id] = svc
	return &svc, nil
}

func (r *ServiceRepo) DeleteOwned(_ context.Context, id, workerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.WorkerID != workerID {
		return repository.ErrNotFound
	}
	delete(r.s.services, id)
	return nil
}

type VerificationRepo struct{ s *Store }

var _ repository.VerificationRepository = (*VerificationRepo)(nil)

func (r *VerificationRepo) Create(_ context.Context, v *models.Verification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = r.s.tick()
	r.s.verifications = append(r.s.verifications, *v)
	return nil
}

func (r *VerificationRepo) ListByWorker(_ context.Context, workerID uuid.UUID) ([]models.Verification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Verification
	for i := len(r.s.verifications) - 1; i >= 0; i-- {
		if r.s.verifications[i].WorkerID == workerID {
			out = append(out, r.s.verifications[i])
		}
	}
	return out, nil
}
