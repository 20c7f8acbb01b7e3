// Package memory provides in-memory implementations of the repository
// interfaces. Tests use them in place of PostgreSQL, Redis and RabbitMQ.
package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/model"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
)

var (
	_ repo.UserRepository         = (*Users)(nil)
	_ repo.TokenDenylist          = (*Denylist)(nil)
	_ repo.JobQueue               = (*Queue)(nil)
	_ repo.ExerciseRepository     = (*Exercises)(nil)
	_ repo.WorkoutRepository      = (*Workouts)(nil)
	_ repo.WorkoutLogRepository   = (*WorkoutLogs)(nil)
	_ repo.FoodRepository         = (*Foods)(nil)
	_ repo.MealRepository         = (*Meals)(nil)
	_ repo.DietPlanRepository     = (*DietPlans)(nil)
	_ repo.NutritionLogRepository = (*NutritionLogs)(nil)
)

// store is a mutex-guarded map of copies keyed by ID.
type store[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
	order []uuid.UUID
}

func (s *store[T]) put(id uuid.UUID, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items == nil {
		s.items = make(map[uuid.UUID]T)
	}
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = v
}

func (s *store[T]) get(id uuid.UUID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

func (s *store[T]) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(x uuid.UUID) bool { return x == id })
	return true
}

// modify applies fn to the stored item under the write lock.
// It reports false when the ID is unknown.
func (s *store[T]) modify(id uuid.UUID, fn func(v *T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return false
	}
	fn(&v)
	s.items[id] = v
	return true
}

// modifyFirst applies fn to the first item, in insertion order, that match accepts.
func (s *store[T]) modifyFirst(match func(v *T) bool, fn func(v *T)) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		v := s.items[id]
		if match(&v) {
			fn(&v)
			s.items[id] = v
			return v, true
		}
	}
	var zero T
	return zero, false
}

// all returns values in insertion order.
func (s *store[T]) all() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *store[T]) byIDs(ids []uuid.UUID) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := s.items[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

func clone[T any](v *T) *T {
	c := *v
	return &c
}

// === Users ===

type Users struct{ s store[model.User] }

func (r *Users) Create(_ context.Context, u *model.User) error {
	for _, x := range r.s.all() {
		if x.Email == model.NormalizeEmail(u.Email) {
			return repo.ErrDuplicateRecord
		}
	}
	c := clone(u)
	c.Email = model.NormalizeEmail(u.Email)
	r.s.put(u.ID, *c)
	return nil
}

func (r *Users) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = model.NormalizeEmail(email)
	for _, u := range r.s.all() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *Users) GetPasswordHash(_ context.Context, id uuid.UUID) (string, error) {
	u, ok := r.s.get(id)
	if !ok {
		return "", repo.ErrNotFound
	}
	return u.PasswordHash, nil
}

// Update overwrites the whole stored user. Tests use it to seed state.
func (r *Users) Update(_ context.Context, u *model.User) error {
	return r.modify(u.ID, func(v *model.User) { *v = *clone(u) })
}

func (r *Users) UpdateProfile(_ context.Context, u *model.User) error {
	return r.modify(u.ID, func(v *model.User) {
		v.Name = u.Name
		v.Profile = u.Profile
		v.Preferences = u.Preferences
		v.UpdatedAt = time.Now().UTC()
	})
}

func (r *Users) UpdateMembership(_ context.Context, id uuid.UUID, m model.Membership) error {
	return r.modify(id, func(v *model.User) { v.Membership = m })
}

func (r *Users) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	return r.modify(id, func(v *model.User) { v.LastLogin = at })
}

func (r *Users) SetPassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	return r.modify(id, func(v *model.User) {
		v.PasswordHash = passwordHash
		v.ResetPasswordToken = ""
		v.ResetPasswordExpire = nil
	})
}

func (r *Users) SetResetToken(_ context.Context, id uuid.UUID, tokenHash string, expire time.Time) error {
	return r.modify(id, func(v *model.User) {
		v.ResetPasswordToken = tokenHash
		v.ResetPasswordExpire = &expire
	})
}

func (r *Users) ConsumeResetToken(_ context.Context, tokenHash, passwordHash string, now time.Time) (*model.User, error) {
	u, ok := r.s.modifyFirst(
		func(v *model.User) bool {
			return v.ResetPasswordToken == tokenHash && v.ResetPasswordExpire != nil && v.ResetPasswordExpire.After(now)
		},
		func(v *model.User) {
			v.PasswordHash = passwordHash
			v.ResetPasswordToken = ""
			v.ResetPasswordExpire = nil
		},
	)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *Users) ExpireMembership(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var expired bool
	err := r.modify(id, func(v *model.User) {
		if v.Membership.Expired(now) {
			v.Membership.IsActive = false
			expired = true
		}
	})
	return expired, err
}

func (r *Users) modify(id uuid.UUID, fn func(v *model.User)) error {
	if !r.s.modify(id, fn) {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Users) Delete(_ context.Context, id uuid.UUID) error {
	if !r.s.remove(id) {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Users) List(_ context.Context) ([]*model.User, error) {
	all := r.s.all()
	out := make([]*model.User, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, &all[i])
	}
	return out, nil
}

func (r *Users) ListExpiredMemberships(_ context.Context, now time.Time) ([]*model.User, error) {
	out := make([]*model.User, 0)
	for _, u := range r.s.all() {
		if u.Membership.Expired(now) {
			out = append(out, &u)
		}
	}
	return out, nil
}

func (r *Users) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, u := range r.s.all() {
		if u.ResetPasswordExpire != nil && !u.ResetPasswordExpire.After(now) {
			u.ResetPasswordToken = ""
			u.ResetPasswordExpire = nil
			r.s.put(u.ID, u)
			n++
		}
	}
	return n, nil
}

// === Denylist ===

type Denylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func (d *Denylist) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ttl <= 0 {
		return nil
	}
	if d.revoked == nil {
		d.revoked = make(map[string]time.Duration)
	}
	d.revoked[tokenID] = ttl
	return nil
}

func (d *Denylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

// === Queue ===

// Queue records published jobs. Err, when set, fails every publish.
type Queue struct {
	mu      sync.Mutex
	jobs    []*model.Job
	retries []*model.Job
	Err     error
}

func (q *Queue) Publish(_ context.Context, j *model.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.jobs = append(q.jobs, j)
	return nil
}

func (q *Queue) PublishRetry(_ context.Context, j *model.Job, _ time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.retries = append(q.retries, j)
	return nil
}

// Jobs returns the jobs published so far.
func (q *Queue) Jobs() []*model.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.jobs)
}

// === Exercises ===

type Exercises struct{ s store[model.Exercise] }

func (r *Exercises) Create(_ context.Context, e *model.Exercise) error {
	r.s.put(e.ID, *clone(e))
	return nil
}

func (r *Exercises) GetByID(_ context.Context, id uuid.UUID) (*model.Exercise, error) {
	e, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (r *Exercises) List(_ context.Context, f repo.ExerciseFilter) ([]*model.Exercise, error) {
	out := make([]*model.Exercise, 0)
	for _, e := range r.s.all() {
		if f.Category != "" && e.Category != f.Category ||
			f.Difficulty != "" && e.Difficulty != f.Difficulty ||
			f.MuscleGroup != "" && !slices.Contains(e.MuscleGroups, f.MuscleGroup) ||
			f.Equipment != "" && !slices.Contains(e.Equipment, f.Equipment) {
			continue
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Exercises) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Exercise, error) {
	return pointers(r.s.byIDs(ids)), nil
}

// === Workouts ===

// Workouts stores workouts. Names resolves CreatorName on reads when set.
type Workouts struct {
	s     store[model.Workout]
	Names *Users
}

func (r *Workouts) Create(_ context.Context, w *model.Workout) error {
	c := clone(w)
	c.Exercises = stripDetails(w.Exercises)
	r.s.put(w.ID, *c)
	return nil
}

func (r *Workouts) GetByID(ctx context.Context, id uuid.UUID) (*model.Workout, error) {
	w, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	w.Exercises = slices.Clone(w.Exercises)
	r.creator(ctx, &w)
	return &w, nil
}

func (r *Workouts) Update(_ context.Context, w *model.Workout) error {
	if _, ok := r.s.get(w.ID); !ok {
		return repo.ErrNotFound
	}
	c := clone(w)
	c.Exercises = stripDetails(w.Exercises)
	r.s.put(w.ID, *c)
	return nil
}

func (r *Workouts) Delete(_ context.Context, id uuid.UUID) error {
	if !r.s.remove(id) {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Workouts) ListPublic(ctx context.Context, f repo.WorkoutFilter) ([]*model.Workout, error) {
	out := make([]*model.Workout, 0)
	all := r.s.all()
	for i := len(all) - 1; i >= 0; i-- {
		w := all[i]
		if !w.IsPublic ||
			f.Type != "" && w.Type != f.Type ||
			f.Difficulty != "" && w.Difficulty != f.Difficulty ||
			f.MuscleGroup != "" && !slices.Contains(w.TargetMuscleGroups, f.MuscleGroup) ||
			f.CreatedBy != nil && w.CreatedBy != *f.CreatedBy {
			continue
		}
		r.creator(ctx, &w)
		out = append(out, &w)
	}
	return out, nil
}

func (r *Workouts) creator(ctx context.Context, w *model.Workout) {
	if r.Names == nil {
		return
	}
	if u, err := r.Names.GetByID(ctx, w.CreatedBy); err == nil {
		w.CreatorName = u.Name
	}
}

func stripDetails(in []model.WorkoutExercise) []model.WorkoutExercise {
	out := slices.Clone(in)
	for i := range out {
		out[i].Details = nil
	}
	return out
}

// === WorkoutLogs ===

type WorkoutLogs struct{ s store[model.WorkoutLog] }

func (r *WorkoutLogs) Create(_ context.Context, l *model.WorkoutLog) error {
	c := clone(l)
	c.Workout = nil
	r.s.put(l.ID, *c)
	return nil
}

func (r *WorkoutLogs) ListByUser(_ context.Context, userID uuid.UUID, p repo.Page) ([]*model.WorkoutLog, int, error) {
	mine := make([]*model.WorkoutLog, 0)
	for _, l := range r.s.all() {
		if l.UserID == userID {
			mine = append(mine, &l)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].Date.After(mine[j].Date) })
	return window(mine, p), len(mine), nil
}

// === Foods ===

type Foods struct{ s store[model.FoodItem] }

func (r *Foods) Create(_ context.Context, f *model.FoodItem) error {
	r.s.put(f.ID, *clone(f))
	return nil
}

func (r *Foods) GetByID(_ context.Context, id uuid.UUID) (*model.FoodItem, error) {
	f, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &f, nil
}

func (r *Foods) List(_ context.Context, f repo.FoodFilter) ([]*model.FoodItem, error) {
	out := make([]*model.FoodItem, 0)
	for _, x := range r.s.all() {
		if f.Category != "" && x.Category != f.Category ||
			f.DietaryTag != "" && !slices.Contains(x.DietaryTags, f.DietaryTag) ||
			f.Search != "" && !containsFold(f.Search, x.Name, x.Description) {
			continue
		}
		out = append(out, &x)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Foods) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*model.FoodItem, error) {
	return pointers(r.s.byIDs(ids)), nil
}

// === Meals ===

type Meals struct{ s store[model.Meal] }

func (r *Meals) Create(_ context.Context, m *model.Meal) error {
	c := clone(m)
	c.Ingredients = slices.Clone(m.Ingredients)
	for i := range c.Ingredients {
		c.Ingredients[i].Food = nil
	}
	r.s.put(m.ID, *c)
	return nil
}

func (r *Meals) GetByID(_ context.Context, id uuid.UUID) (*model.Meal, error) {
	m, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	m.Ingredients = slices.Clone(m.Ingredients)
	return &m, nil
}

func (r *Meals) List(_ context.Context, f repo.MealFilter) ([]*model.Meal, error) {
	out := make([]*model.Meal, 0)
	for _, m := range r.s.all() {
		if f.Type != "" && m.Type != f.Type ||
			f.Difficulty != "" && m.Difficulty != f.Difficulty ||
			f.Search != "" && !containsFold(f.Search, m.Name, m.Description) {
			continue
		}
		m.Ingredients = slices.Clone(m.Ingredients)
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Meals) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Meal, error) {
	return pointers(r.s.byIDs(ids)), nil
}

// === DietPlans ===

type DietPlans struct{ s store[model.DietPlan] }

func (r *DietPlans) Create(_ context.Context, p *model.DietPlan) error {
	c := clone(p)
	c.Meals = slices.Clone(p.Meals)
	for i := range c.Meals {
		c.Meals[i].Meal = nil
	}
	r.s.put(p.ID, *c)
	return nil
}

func (r *DietPlans) GetByID(_ context.Context, id uuid.UUID) (*model.DietPlan, error) {
	p, ok := r.s.get(id)
	if !ok {
		return nil, repo.ErrNotFound
	}
	p.Meals = slices.Clone(p.Meals)
	return &p, nil
}

func (r *DietPlans) ListPublic(_ context.Context, f repo.DietPlanFilter) ([]*model.DietPlan, error) {
	out := make([]*model.DietPlan, 0)
	all := r.s.all()
	for i := len(all) - 1; i >= 0; i-- {
		p := all[i]
		if !p.IsPublic ||
			f.Type != "" && p.Type != f.Type ||
			f.Difficulty != "" && p.Difficulty != f.Difficulty ||
			f.CreatedBy != nil && p.CreatedBy != *f.CreatedBy {
			continue
		}
		p.Meals = slices.Clone(p.Meals)
		out = append(out, &p)
	}
	return out, nil
}

// === NutritionLogs ===

type NutritionLogs struct{ s store[model.NutritionLog] }

func (r *NutritionLogs) Create(_ context.Context, l *model.NutritionLog) error {
	r.s.put(l.ID, *clone(l))
	return nil
}

func (r *NutritionLogs) List(_ context.Context, userID uuid.UUID, f repo.NutritionLogFilter) ([]*model.NutritionLog, int, error) {
	out := make([]*model.NutritionLog, 0)
	for _, l := range r.s.all() {
		if l.UserID != userID {
			continue
		}
		if f.From != nil && f.To != nil && (l.Date.Before(*f.From) || l.Date.After(*f.To)) {
			continue
		}
		out = append(out, &l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return window(out, f.Page), len(out), nil
}

func (r *NutritionLogs) Since(_ context.Context, userID uuid.UUID, from time.Time) ([]*model.NutritionLog, error) {
	out := make([]*model.NutritionLog, 0)
	for _, l := range r.s.all() {
		if l.UserID == userID && !l.Date.Before(from) {
			out = append(out, &l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// === helpers ===

func pointers[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

func window[T any](items []T, p repo.Page) []T {
	start := min(p.Offset(), len(items))
	end := len(items)
	if p.Limit > 0 {
		end = start + min(p.Limit, len(items)-start)
	}
	return items[start:end]
}

func containsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
