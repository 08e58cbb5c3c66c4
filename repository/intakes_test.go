package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Ggirassol/myIntake-API/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intakeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "date", "kcal", "protein", "carbs", "intakes"})
}

func TestUpsert_EmitsSingleConflictStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormIntakeRepository(db)

	mock.ExpectExec(`INSERT INTO "daily_intakes" .*ON CONFLICT \("user_id","date"\) DO UPDATE SET .*EXCLUDED`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.DailyIntake{
		ID:      "bb345ccd778fbde485ffaeda",
		UserID:  "6778436ee5e8aac81fb73f15",
		Date:    "2025-01-01",
		Kcal:    2000,
		Protein: 60,
		Carbs:   140,
		Intakes: models.EntryList{{Meal: "breakfast", Kcal: 2000, Protein: 60, Carbs: 140}},
	})
	require.NoError(t, err)
	expectations(t, mock)
}

func TestFindByUserAndDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormIntakeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_intakes" WHERE user_id = \$1 AND date = \$2`).
		WithArgs("6778436ee5e8aac81fb73f15", "2025-01-01", 1).
		WillReturnRows(intakeRows().AddRow(
			"bb345ccd778fbde485ffaeda", "6778436ee5e8aac81fb73f15", "2025-01-01",
			2000.0, 60.0, 140.0, []byte(`[{"meal":"breakfast","kcal":2000,"protein":60,"carbs":140}]`),
		))

	row, err := repo.FindByUserAndDate(context.Background(), "6778436ee5e8aac81fb73f15", "2025-01-01")
	require.NoError(t, err)
	require.Equal(t, 2000.0, row.Kcal)
	require.Len(t, row.Intakes, 1)
	require.Equal(t, "breakfast", row.Intakes[0].Meal)
	expectations(t, mock)
}

func TestFindByUserAndDate_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormIntakeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_intakes" WHERE user_id = \$1 AND date = \$2`).
		WithArgs("6778436ee5e8aac81fb73f15", "2025-01-02", 1).
		WillReturnRows(intakeRows())

	_, err := repo.FindByUserAndDate(context.Background(), "6778436ee5e8aac81fb73f15", "2025-01-02")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	expectations(t, mock)
}

func TestUpdateEntries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormIntakeRepository(db)

	mock.ExpectExec(`UPDATE "daily_intakes" SET .* WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEntries(context.Background(), &models.DailyIntake{
		ID:      "bb345ccd778fbde485ffaeda",
		Kcal:    900,
		Protein: 45,
		Carbs:   110,
		Intakes: models.EntryList{{Meal: "lunch", Kcal: 900, Protein: 45, Carbs: 110}},
	})
	require.NoError(t, err)
	expectations(t, mock)
}

func TestFindByUserAndDates_OrdersAscending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormIntakeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_intakes" WHERE user_id = \$1 AND date IN \(\$2,\$3\) ORDER BY date ASC`).
		WithArgs("6778436ee5e8aac81fb73f15", "2025-01-06", "2025-01-07").
		WillReturnRows(intakeRows().
			AddRow("aa0000000000000000000001", "6778436ee5e8aac81fb73f15", "2025-01-06", 1000.0, 30.0, 80.0, []byte(`[]`)).
			AddRow("aa0000000000000000000002", "6778436ee5e8aac81fb73f15", "2025-01-07", 1200.0, 40.0, 90.0, []byte(`[]`)))

	rows, err := repo.FindByUserAndDates(context.Background(), "6778436ee5e8aac81fb73f15",
		[]string{"2025-01-06", "2025-01-07"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "2025-01-06", rows[0].Date)
	expectations(t, mock)
}
