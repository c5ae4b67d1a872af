package services

import (
	"context"
	"errors"
	"net/mail"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-p2p-payments/internal/logger"
	"github.com/sbilibin2017/gw-p2p-payments/internal/models"
	"github.com/sbilibin2017/gw-p2p-payments/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=mock_auth_test.go -package=services

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
}

// AccountCreator opens accounts.
type AccountCreator interface {
	Create(ctx context.Context, userID uuid.UUID, currency models.Currency, balance decimal.Decimal) (*models.Account, error)
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID, isStaff bool) (string, error)
}

// InitialGrant is the opening balance of every new account, expressed in
// Currency and converted into the currency the account is opened in.
type InitialGrant struct {
	Amount   decimal.Decimal
	Currency models.Currency
}

// AuthService handles registration and login.
type AuthService struct {
	tm        TxManager
	reader    UserReader
	writer    UserWriter
	accounts  AccountCreator
	converter Converter
	jwt       JWTGenerator
	grant     InitialGrant
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	tm TxManager,
	reader UserReader,
	writer UserWriter,
	accounts AccountCreator,
	converter Converter,
	jwt JWTGenerator,
	grant InitialGrant,
) *AuthService {
	return &AuthService{
		tm:        tm,
		reader:    reader,
		writer:    writer,
		accounts:  accounts,
		converter: converter,
		jwt:       jwt,
		grant:     grant,
	}
}

// ParseEmail validates a bare address and lower-cases it.
func ParseEmail(email string) (string, error) {
	email = normalizeEmail(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Register creates a user together with its account, funded with the initial grant.
func (svc *AuthService) Register(ctx context.Context, username, password, email string, currency models.Currency) (*models.Account, error) {
	email, err := ParseEmail(email)
	if err != nil {
		return nil, err
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return nil, ErrUserAlreadyExists
	}

	balance, err := svc.converter.Convert(svc.grant.Currency, currency, svc.grant.Amount)
	if err != nil {
		logger.Log.Errorw("failed to convert initial balance", "currency", currency, "err", err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	var account *models.Account
	err = svc.tm.Do(ctx, func(ctx context.Context) error {
		user := &models.UserDB{
			Username:     username,
			Email:        email,
			PasswordHash: string(hashedPassword),
		}
		if err := svc.writer.Save(ctx, user); err != nil {
			return err
		}

		created, err := svc.accounts.Create(ctx, user.UserID, currency, balance)
		if err != nil {
			return err
		}
		created.Username = user.Username
		created.Email = user.Email
		account = created
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	logger.Log.Infow("user registered", "username", username, "currency", currency, "balance", balance)
	return account, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID, user.IsStaff)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// EnsureStaff creates a staff user unless the username or email is taken.
// Staff users own no account.
func (svc *AuthService) EnsureStaff(ctx context.Context, username, password, email string) error {
	email, err := ParseEmail(email)
	if err != nil {
		return err
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check staff user exists", "err", err)
		return err
	}
	if user != nil {
		logger.Log.Infow("staff user already present", "username", user.Username, "is_staff", user.IsStaff)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	err = svc.writer.Save(ctx, &models.UserDB{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsStaff:      true,
	})
	if err != nil && !errors.Is(err, repositories.ErrAlreadyExists) {
		logger.Log.Errorw("failed to save staff user", "err", err)
		return err
	}

	logger.Log.Infow("staff user ensured", "username", username)
	return nil
}
