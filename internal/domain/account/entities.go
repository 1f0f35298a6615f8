package account

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("account not found")
	// ErrTaken is returned when username, email or phone collides with an
	// existing account.
	ErrTaken = errors.New("account identifier already taken")
)

// Account is the directory entry the ledger references. The ledger treats
// it as opaque: it reads AccountID and Username for identity matching and
// never mutates it.
type Account struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	AccountID    string    `gorm:"size:32;uniqueIndex:ux_accounts_account_id" json:"account_id"`
	Username     string    `gorm:"size:64;uniqueIndex:ux_accounts_username" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex:ux_accounts_email" json:"email"`
	Phone        string    `gorm:"size:32;uniqueIndex:ux_accounts_phone" json:"phone"`
	PasswordHash string    `gorm:"size:128" json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
