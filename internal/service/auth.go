package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/taskdeck/taskdeck/internal/event"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenInvalid       = errors.New("invalid verification token")
	ErrTokenUsed          = errors.New("this verification link has already been used")
	ErrTokenExpired       = errors.New("this verification link has expired")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

const (
	defaultLocale   = "en-US"
	defaultTimezone = "UTC"
)

type AuthService struct {
	db              *sqlx.DB
	userRepository  repository.UserRepository
	tokenRepository repository.TokenRepository
	dispatcher      *event.Dispatcher
	tokenExpiry     time.Duration
}

func NewAuthService(
	db *sqlx.DB,
	userRepository repository.UserRepository,
	tokenRepository repository.TokenRepository,
	dispatcher *event.Dispatcher,
	tokenExpiry time.Duration,
) *AuthService {
	return &AuthService{
		db:              db,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		dispatcher:      dispatcher,
		tokenExpiry:     tokenExpiry,
	}
}

// Register creates a user in waiting-verification state together with its
// first verification token. Both rows are written in one transaction, so a
// failure on either side leaves no partial state. The UserRegistered event
// is dispatched only after the transaction committed.
func (s *AuthService) Register(login, password, email string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	_, err := s.userRepository.ByEmail(email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	apiToken, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Login:        login,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Status:       model.UserStatusWaitingVerification,
		APIToken:     apiToken,
		Locale:       defaultLocale,
		Timezone:     defaultTimezone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	rawToken, token, err := s.newVerificationToken(user.ID, now)
	if err != nil {
		return nil, err
	}

	err = repository.Transact(s.db, func(tx *sqlx.Tx) error {
		txErr := s.userRepository.WithTx(tx).Create(user)
		if txErr != nil {
			if errors.Is(txErr, repository.ErrDuplicateUser) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", txErr)
		}

		txErr = s.tokenRepository.WithTx(tx).Create(token)
		if txErr != nil {
			return fmt.Errorf("failed to create verification token: %w", txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)

	err = s.dispatcher.DispatchUserRegistered(event.UserRegistered{User: user, RawToken: rawToken})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Verify consumes a raw verification token. Checks run in a fixed order:
// unknown hash, already used, expired, then success. Activation and the
// used_at write share one transaction; concurrent attempts serialize on the
// conditional used_at update and the loser gets ErrTokenUsed.
func (s *AuthService) Verify(rawToken string) (*model.User, error) {
	tokenHash := HashToken(rawToken)

	var user *model.User
	err := repository.Transact(s.db, func(tx *sqlx.Tx) error {
		tokens := s.tokenRepository.WithTx(tx)
		users := s.userRepository.WithTx(tx)

		token, txErr := tokens.ByHash(tokenHash)
		if txErr != nil {
			if errors.Is(txErr, repository.ErrTokenNotFound) {
				slog.Warn("email verification failed: token not found")
				return ErrTokenInvalid
			}
			return fmt.Errorf("failed to look up token: %w", txErr)
		}

		if token.IsUsed() {
			slog.Warn("email verification failed: token already used", "token_id", token.ID)
			return ErrTokenUsed
		}

		now := time.Now()
		marked, txErr := tokens.MarkUsed(token.ID, now)
		if txErr != nil {
			return fmt.Errorf("failed to mark token used: %w", txErr)
		}
		if !marked {
			// Another request consumed the token first.
			slog.Warn("email verification failed: token already used", "token_id", token.ID)
			return ErrTokenUsed
		}

		if token.IsExpired() {
			// Returning rolls back the used_at write above.
			slog.Warn("email verification failed: token expired", "token_id", token.ID)
			return ErrTokenExpired
		}

		user, txErr = users.ByID(token.UserID)
		if txErr != nil {
			return fmt.Errorf("failed to load user: %w", txErr)
		}

		user.Activate(now)
		txErr = users.Activate(user)
		if txErr != nil {
			return fmt.Errorf("failed to activate user: %w", txErr)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("email verified", "user_id", user.ID)
	return user, nil
}

// Resend issues a fresh verification token for a still-pending user and
// dispatches the same event as registration. For an already active user it
// is a deliberate no-op. Previously issued tokens stay valid.
func (s *AuthService) Resend(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsActive() {
		return nil
	}

	rawToken, token, err := s.newVerificationToken(user.ID, time.Now())
	if err != nil {
		return err
	}

	err = s.tokenRepository.Create(token)
	if err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	slog.Info("verification token reissued", "user_id", user.ID)

	return s.dispatcher.DispatchUserRegistered(event.UserRegistered{User: user, RawToken: rawToken})
}

// CleanupTokens deletes all used or expired verification tokens and returns
// the number deleted. Intended to run as a periodic maintenance task.
func (s *AuthService) CleanupTokens() (int64, error) {
	count, err := s.tokenRepository.DeleteExpiredOrUsed(time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete tokens: %w", err)
	}

	if count == 0 {
		slog.Info("no expired or used tokens to delete")
	} else {
		slog.Info("deleted expired/used tokens", "count", count)
	}

	return count, nil
}

// Login validates credentials and returns the user carrying the opaque API
// token used as the bearer secret on authenticated requests.
func (s *AuthService) Login(login, password string) (*model.User, error) {
	user, err := s.userRepository.ByLogin(login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Logout rotates the user's API token, invalidating the old bearer secret.
func (s *AuthService) Logout(user *model.User) error {
	apiToken, err := GenerateToken()
	if err != nil {
		return err
	}

	err = s.userRepository.RotateAPIToken(user.ID, apiToken)
	if err != nil {
		return fmt.Errorf("failed to rotate api token: %w", err)
	}
	user.APIToken = apiToken

	slog.Info("user logged out", "user_id", user.ID)
	return nil
}

func (s *AuthService) newVerificationToken(userID string, now time.Time) (rawToken string, token *model.EmailVerificationToken, err error) {
	rawToken, err = GenerateToken()
	if err != nil {
		return "", nil, err
	}

	token = &model.EmailVerificationToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		TokenHash: HashToken(rawToken),
		ExpiresAt: now.Add(s.tokenExpiry),
		CreatedAt: now,
	}
	return rawToken, token, nil
}

// GenerateToken returns 32 bytes of cryptographic randomness as a 64-char
// hex string.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// HashToken derives the only persisted form of a raw verification token.
func HashToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
