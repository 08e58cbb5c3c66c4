package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is a single logged meal.
type Entry struct {
	Meal    string  `json:"meal"`
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
}

// EntryList is stored as a JSONB array so the running totals and the ledger of
// entries live in one row and change in one statement.
type EntryList []Entry

func (l EntryList) Value() (driver.Value, error) {
	if l == nil {
		l = EntryList{}
	}
	return json.Marshal(l)
}

func (l *EntryList) Scan(value interface{}) error {
	if value == nil {
		*l = EntryList{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for EntryList", value)
	}
	return json.Unmarshal(raw, l)
}

// DailyIntake is the aggregate for one user on one calendar day: the running
// totals plus every entry that produced them, in submission order.
//
// Invariant: Kcal/Protein/Carbs equal the element-wise sums over Intakes. Every
// write path updates both in the same statement.
type DailyIntake struct {
	ID     string `gorm:"primaryKey;type:char(24)" json:"id"`
	UserID string `gorm:"type:char(24);not null;uniqueIndex:idx_user_date" json:"userId"`
	Date   string `gorm:"type:char(10);not null;uniqueIndex:idx_user_date" json:"date"` // "YYYY-MM-DD"

	Kcal    float64 `gorm:"not null" json:"kcal"`
	Protein float64 `gorm:"not null" json:"protein"`
	Carbs   float64 `gorm:"not null" json:"carbs"`

	Intakes EntryList `gorm:"type:jsonb;not null" json:"intakes"`
}

// Sum recomputes totals from the ledger. Used on edits, where a change can move
// any field in either direction.
func (l EntryList) Sum() (kcal, protein, carbs float64) {
	for _, e := range l {
		kcal += e.Kcal
		protein += e.Protein
		carbs += e.Carbs
	}
	return kcal, protein, carbs
}

var ErrEntryIndexOutOfRange = errors.New("entry index out of range")

// ReplaceEntry swaps the entry at index and refreshes the totals.
func (d *DailyIntake) ReplaceEntry(index int, e Entry) error {
	if index < 0 || index >= len(d.Intakes) {
		return ErrEntryIndexOutOfRange
	}
	d.Intakes[index] = e
	d.Kcal, d.Protein, d.Carbs = d.Intakes.Sum()
	return nil
}
