package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "moneylending-backend/internal/domain/account"
	loandomain "moneylending-backend/internal/domain/loan"
	"moneylending-backend/pkg/id"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrBadCode        = errors.New("invalid or expired verification code")
)

// TokenStore holds opaque session tokens. Backed by redis in production.
type TokenStore interface {
	Put(ctx context.Context, token, accountID string) error
	Lookup(ctx context.Context, token string) (string, error)
	Drop(ctx context.Context, token string) error
}

// CodeStore holds one-time email verification codes.
type CodeStore interface {
	Issue(ctx context.Context, email string) (string, error)
	Redeem(ctx context.Context, email, code string) (bool, error)
}

type Usecase struct {
	repo     domain.Repository
	tokens   TokenStore
	codes    CodeStore
	notifier domain.Notifier
}

func NewUsecase(repo domain.Repository, tokens TokenStore, codes CodeStore, n domain.Notifier) *Usecase {
	return &Usecase{repo: repo, tokens: tokens, codes: codes, notifier: n}
}

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

type AccountDTO struct {
	AccountID string    `json:"account_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(a *domain.Account) *AccountDTO {
	return &AccountDTO{
		AccountID: a.AccountID,
		Username:  a.Username,
		Email:     a.Email,
		Phone:     a.Phone,
		Verified:  a.Verified,
		CreatedAt: a.CreatedAt,
	}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AccountDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &domain.Account{
		AccountID:    id.NewID32(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
	}
	if err := u.repo.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, domain.ErrTaken) {
			return nil, domain.ErrTaken
		}
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	return toDTO(a), nil
}

type SessionDTO struct {
	Token   string      `json:"token"`
	Account *AccountDTO `json:"account"`
}

func (u *Usecase) Login(ctx context.Context, username, password string) (*SessionDTO, error) {
	a, err := u.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	token := id.NewID32()
	if err := u.tokens.Put(ctx, token, a.AccountID); err != nil {
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	return &SessionDTO{Token: token, Account: toDTO(a)}, nil
}

func (u *Usecase) Logout(ctx context.Context, token string) error {
	if err := u.tokens.Drop(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	return nil
}

// SendVerification issues a one-time code for the address and hands it to
// the notifier. Delivery failure is reported to the caller but nothing has
// been committed, so resending is always safe.
func (u *Usecase) SendVerification(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := u.repo.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	code, err := u.codes.Issue(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	if err := u.notifier.SendVerificationCode(ctx, email, code); err != nil {
		log.WithField("email", email).WithError(err).Warn("verification mail not delivered")
		return err
	}
	return nil
}

// ConfirmVerification redeems the code and marks the account verified.
func (u *Usecase) ConfirmVerification(ctx context.Context, email, code string) (*AccountDTO, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ok, err := u.codes.Redeem(ctx, email, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrBadCode
	}
	a, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	a.Verified = true
	if err := u.repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: %v", loandomain.ErrStoreUnavailable, err)
	}
	return toDTO(a), nil
}
