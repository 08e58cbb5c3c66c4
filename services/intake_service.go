package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Ggirassol/myIntake-API/models"
	"github.com/Ggirassol/myIntake-API/repository"
	"github.com/Ggirassol/myIntake-API/utils"

	"gorm.io/gorm"
)

// IntakeService records intake entries and computes the daily, weekly and
// monthly rollups.
type IntakeService struct {
	intakes repository.IntakeRepository
	users   repository.UserRepository
}

func NewIntakeService(intakes repository.IntakeRepository, users repository.UserRepository) *IntakeService {
	return &IntakeService{intakes: intakes, users: users}
}

// ---------- Recording ----------

// RecordIntake appends one entry to the user's day, creating the day on first
// submission. Nutrient arguments are pointers so a missing field and an explicit
// zero stay distinguishable. Returns the day's record after the update.
func (s *IntakeService) RecordIntake(ctx context.Context, userID, date, meal string, kcal, protein, carbs *float64) (*models.DailyIntake, error) {
	if userID == "" || date == "" || meal == "" || kcal == nil || protein == nil || carbs == nil {
		return nil, ErrMissingFields
	}
	if !validUserID(userID) {
		return nil, ErrBadUserID
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	if *kcal < 0 || *protein < 0 || *carbs < 0 {
		return nil, ErrInvalidNutrients
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := models.Entry{Meal: meal, Kcal: *kcal, Protein: *protein, Carbs: *carbs}
	row := &models.DailyIntake{
		ID:      utils.NewID(),
		UserID:  userID,
		Date:    date,
		Kcal:    entry.Kcal,
		Protein: entry.Protein,
		Carbs:   entry.Carbs,
		Intakes: models.EntryList{entry},
	}
	// Single upsert: insert the day, or increment totals and append the entry
	// if it already exists. Concurrent submissions serialize at the store.
	if err := s.intakes.Upsert(ctx, row); err != nil {
		return nil, err
	}

	return s.intakes.FindByUserAndDate(ctx, userID, date)
}

// EditEntry replaces the entry at index and recomputes the day's totals as a
// full re-sum, since an edit can move any field in either direction.
func (s *IntakeService) EditEntry(ctx context.Context, userID, intakeID string, index *int, meal string, kcal, protein, carbs *float64) (*models.DailyIntake, error) {
	if userID == "" || intakeID == "" || index == nil || meal == "" || kcal == nil || protein == nil || carbs == nil {
		return nil, ErrMissingFields
	}
	if !validUserID(userID) {
		return nil, ErrBadUserID
	}
	if *kcal < 0 || *protein < 0 || *carbs < 0 {
		return nil, ErrInvalidNutrients
	}

	row, err := s.intakes.FindByIDAndUser(ctx, intakeID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoIntakeFound
		}
		return nil, err
	}

	entry := models.Entry{Meal: meal, Kcal: *kcal, Protein: *protein, Carbs: *carbs}
	if err := row.ReplaceEntry(*index, entry); err != nil {
		return nil, ErrInvalidIndex
	}
	if err := s.intakes.UpdateEntries(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// ---------- Daily ----------

func (s *IntakeService) GetByDate(ctx context.Context, userID, date string) (*models.DailyIntake, error) {
	if !validUserID(userID) {
		return nil, ErrBadUserID
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}
	row, err := s.intakes.FindByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoIntakeFound
		}
		return nil, err
	}
	return row, nil
}

// GetTotalsByDate is the light variant of GetByDate: just the running totals,
// without the entry ledger.
func (s *IntakeService) GetTotalsByDate(ctx context.Context, userID, date string) (*NutrientTotals, error) {
	row, err := s.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &NutrientTotals{Kcal: row.Kcal, Protein: row.Protein, Carbs: row.Carbs}, nil
}

// ---------- Weekly ----------

type NutrientTotals struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
}

type WeekDay struct {
	Day     string  `json:"day"` // weekday name, from the record's own date
	Date    string  `json:"date"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
}

type WeeklySummary struct {
	WeekSum     NutrientTotals `json:"weekSum"`
	WeekIntakes []WeekDay      `json:"weekIntakes"`
}

// GetWeek sums the ISO week (Monday through Sunday) containing date. Returns
// ErrEmptyWeek when the user has no records in that week.
func (s *IntakeService) GetWeek(ctx context.Context, userID, date string) (*WeeklySummary, error) {
	if !validUserID(userID) {
		return nil, ErrBadUserID
	}
	if !validDate(date) {
		return nil, ErrInvalidDate
	}

	week := weekDates(date)
	rows, err := s.intakes.FindByUserAndDates(ctx, userID, week[:])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyWeek
	}

	byDate := map[string]models.DailyIntake{}
	for _, r := range rows {
		byDate[r.Date] = r
	}

	out := &WeeklySummary{}
	for _, d := range week {
		r, ok := byDate[d]
		if !ok {
			continue
		}
		// The label comes from the record's date, not its position: sparse
		// weeks must still name each day correctly.
		t, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, err
		}
		out.WeekIntakes = append(out.WeekIntakes, WeekDay{
			Day:     t.Weekday().String(),
			Date:    r.Date,
			Kcal:    r.Kcal,
			Protein: r.Protein,
			Carbs:   r.Carbs,
		})
		out.WeekSum.Kcal += r.Kcal
		out.WeekSum.Protein += r.Protein
		out.WeekSum.Carbs += r.Carbs
	}
	return out, nil
}

// weekDates returns the seven dates of the ISO week containing date, Monday
// first. date must already be validated.
func weekDates(date string) [7]string {
	t, _ := time.Parse(dateLayout, date)
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	back := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -back)

	var days [7]string
	for i := range days {
		days[i] = monday.AddDate(0, 0, i).Format(dateLayout)
	}
	return days
}

// ---------- Monthly ----------

// MonthlySummary maps a year to its month totals, most recent month first.
// Each element has a single key, the English month name.
type MonthlySummary map[int][]map[string]NutrientTotals

// GetMonthly groups every record of the user by calendar month. Returns
// ErrNoIntakesEver when the user has never registered an intake.
func (s *IntakeService) GetMonthly(ctx context.Context, userID string) (MonthlySummary, error) {
	if !validUserID(userID) {
		return nil, ErrBadUserID
	}

	rows, err := s.intakes.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoIntakesEver
	}

	type ym struct {
		year  int
		month time.Month
	}
	totals := map[ym]*NutrientTotals{}
	months := map[int][]time.Month{}
	for _, r := range rows {
		t, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, err
		}
		key := ym{t.Year(), t.Month()}
		if totals[key] == nil {
			totals[key] = &NutrientTotals{}
			months[key.year] = append(months[key.year], key.month)
		}
		totals[key].Kcal += r.Kcal
		totals[key].Protein += r.Protein
		totals[key].Carbs += r.Carbs
	}

	out := MonthlySummary{}
	for year, ms := range months {
		sort.Slice(ms, func(i, j int) bool { return ms[i] > ms[j] })
		for _, m := range ms {
			out[year] = append(out[year], map[string]NutrientTotals{
				m.String(): *totals[ym{year, m}],
			})
		}
	}
	return out, nil
}
