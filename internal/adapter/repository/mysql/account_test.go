package mysql

import (
	"context"
	"errors"
	"testing"

	accountDomain "moneylending-backend/internal/domain/account"
	"moneylending-backend/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openAccountTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&accountDomain.Account{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeAccount(username, email, phone string) *accountDomain.Account {
	return &accountDomain.Account{
		AccountID:    id.NewID32(),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: "$2a$10$notarealhash",
	}
}

func TestAccountCreateAndLookups(t *testing.T) {
	db := openAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	a := makeAccount("carol", "carol@example.com", "+15550001111")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	byName, err := repo.GetByUsername(ctx, "carol")
	if err != nil || byName.AccountID != a.AccountID {
		t.Fatalf("GetByUsername: %+v, err %v", byName, err)
	}
	byEmail, err := repo.GetByEmail(ctx, "carol@example.com")
	if err != nil || byEmail.AccountID != a.AccountID {
		t.Fatalf("GetByEmail: %+v, err %v", byEmail, err)
	}
	byPhone, err := repo.GetByPhone(ctx, "+15550001111")
	if err != nil || byPhone.AccountID != a.AccountID {
		t.Fatalf("GetByPhone: %+v, err %v", byPhone, err)
	}
	byID, err := repo.GetByAccountID(ctx, a.AccountID)
	if err != nil || byID.Username != "carol" {
		t.Fatalf("GetByAccountID: %+v, err %v", byID, err)
	}

	if _, err := repo.GetByUsername(ctx, "nobody"); !errors.Is(err, accountDomain.ErrNotFound) {
		t.Fatalf("unknown name: err = %v, want ErrNotFound", err)
	}
}

func TestAccountCreate_DuplicateUsername(t *testing.T) {
	db := openAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeAccount("carol", "a@x.com", "1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := repo.Create(ctx, makeAccount("carol", "b@x.com", "2"))
	if !errors.Is(err, accountDomain.ErrTaken) {
		t.Fatalf("duplicate username: err = %v, want ErrTaken", err)
	}
}

func TestAccountSave(t *testing.T) {
	db := openAccountTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	a := makeAccount("carol", "carol@example.com", "+15550001111")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a.Verified = true
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByAccountID(ctx, a.AccountID)
	if err != nil || !got.Verified {
		t.Fatalf("verified flag not persisted: %+v, err %v", got, err)
	}
}
