package models

// User is one account. IDs are 24-char hex strings so that identifiers from the
// previous deployment keep working unchanged.
type User struct {
	ID        string `gorm:"primaryKey;type:char(24)" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	CreatedAt string `gorm:"not null" json:"createdAt"` // "YYYY-MM-DD"

	Verified              bool    `gorm:"not null" json:"verified"`
	VerificationToken     *string `json:"-"`
	LastVerificationToken *string `json:"-"` // RFC3339 timestamp of last issuance
	RefreshToken          *string `json:"-"`
}
