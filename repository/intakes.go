package repository

import (
	"context"

	"github.com/Ggirassol/myIntake-API/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IntakeRepository is the store surface for daily intake records. Lookups
// return gorm.ErrRecordNotFound when no row matches.
type IntakeRepository interface {
	// Upsert inserts the row, or — if a row for (userID, date) already exists —
	// adds the totals and appends the entries to the stored ledger, all in one
	// statement. Concurrent submissions for the same day therefore cannot lose
	// updates or collide on the unique index.
	Upsert(ctx context.Context, row *models.DailyIntake) error
	UpdateEntries(ctx context.Context, row *models.DailyIntake) error
	FindByUserAndDate(ctx context.Context, userID, date string) (*models.DailyIntake, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*models.DailyIntake, error)
	FindByUserAndDates(ctx context.Context, userID string, dates []string) ([]models.DailyIntake, error)
	FindAllByUser(ctx context.Context, userID string) ([]models.DailyIntake, error)
}

type GormIntakeRepository struct {
	db *gorm.DB
}

func NewGormIntakeRepository(db *gorm.DB) *GormIntakeRepository {
	return &GormIntakeRepository{db: db}
}

func (r *GormIntakeRepository) Upsert(ctx context.Context, row *models.DailyIntake) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"kcal":    gorm.Expr("daily_intakes.kcal + EXCLUDED.kcal"),
			"protein": gorm.Expr("daily_intakes.protein + EXCLUDED.protein"),
			"carbs":   gorm.Expr("daily_intakes.carbs + EXCLUDED.carbs"),
			"intakes": gorm.Expr("daily_intakes.intakes || EXCLUDED.intakes"),
		}),
	}).Create(row).Error
}

// UpdateEntries persists a recomputed ledger and its totals together.
func (r *GormIntakeRepository) UpdateEntries(ctx context.Context, row *models.DailyIntake) error {
	return r.db.WithContext(ctx).Model(&models.DailyIntake{}).Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"kcal":    row.Kcal,
			"protein": row.Protein,
			"carbs":   row.Carbs,
			"intakes": row.Intakes,
		}).Error
}

func (r *GormIntakeRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*models.DailyIntake, error) {
	var row models.DailyIntake
	if err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormIntakeRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*models.DailyIntake, error) {
	var row models.DailyIntake
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormIntakeRepository) FindByUserAndDates(ctx context.Context, userID string, dates []string) ([]models.DailyIntake, error) {
	var rows []models.DailyIntake
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date IN ?", userID, dates).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormIntakeRepository) FindAllByUser(ctx context.Context, userID string) ([]models.DailyIntake, error) {
	var rows []models.DailyIntake
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
