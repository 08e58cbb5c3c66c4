package services

import (
	"context"
	"sort"
	"sync"

	"github.com/Ggirassol/myIntake-API/models"

	"gorm.io/gorm"
)

// In-memory repository fakes. Mutations take the lock and operate on copies so
// they behave like a store, not like shared pointers.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) RotateVerification(_ context.Context, id, token, issuedAt, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.VerificationToken = &token
	u.LastVerificationToken = &issuedAt
	u.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) MarkVerified(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Verified = true
	u.VerificationToken = nil
	u.LastVerificationToken = nil
	return nil
}

func (r *fakeUserRepo) SetRefreshToken(_ context.Context, id string, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshToken = token
	return nil
}

type fakeIntakeRepo struct {
	mu   sync.Mutex
	rows map[string]*models.DailyIntake // by id
}

func newFakeIntakeRepo() *fakeIntakeRepo {
	return &fakeIntakeRepo{rows: map[string]*models.DailyIntake{}}
}

// Upsert mimics the store's atomic insert-or-increment under one lock.
func (r *fakeIntakeRepo) Upsert(_ context.Context, row *models.DailyIntake) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.UserID == row.UserID && existing.Date == row.Date {
			existing.Kcal += row.Kcal
			existing.Protein += row.Protein
			existing.Carbs += row.Carbs
			existing.Intakes = append(existing.Intakes, row.Intakes...)
			return nil
		}
	}
	cp := *row
	cp.Intakes = append(models.EntryList{}, row.Intakes...)
	r.rows[row.ID] = &cp
	return nil
}

func (r *fakeIntakeRepo) UpdateEntries(_ context.Context, row *models.DailyIntake) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[row.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Kcal = row.Kcal
	existing.Protein = row.Protein
	existing.Carbs = row.Carbs
	existing.Intakes = append(models.EntryList{}, row.Intakes...)
	return nil
}

func (r *fakeIntakeRepo) FindByUserAndDate(_ context.Context, userID, date string) (*models.DailyIntake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.UserID == userID && row.Date == date {
			return copyIntake(row), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIntakeRepo) FindByIDAndUser(_ context.Context, id, userID string) (*models.DailyIntake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return copyIntake(row), nil
}

func (r *fakeIntakeRepo) FindByUserAndDates(_ context.Context, userID string, dates []string) ([]models.DailyIntake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[string]bool{}
	for _, d := range dates {
		want[d] = true
	}
	var out []models.DailyIntake
	for _, row := range r.rows {
		if row.UserID == userID && want[row.Date] {
			out = append(out, *copyIntake(row))
		}
	}
	sortByDate(out, true)
	return out, nil
}

func (r *fakeIntakeRepo) FindAllByUser(_ context.Context, userID string) ([]models.DailyIntake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DailyIntake
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *copyIntake(row))
		}
	}
	sortByDate(out, false)
	return out, nil
}

func copyIntake(row *models.DailyIntake) *models.DailyIntake {
	cp := *row
	cp.Intakes = append(models.EntryList{}, row.Intakes...)
	return &cp
}

func sortByDate(rows []models.DailyIntake, asc bool) {
	sort.Slice(rows, func(i, j int) bool {
		if asc {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Date > rows[j].Date
	})
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string // recipient per send
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
