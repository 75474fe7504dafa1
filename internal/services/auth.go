package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/Anuj670023/BANKING-SYSTEM/internal/repository"
	"github.com/Anuj670023/BANKING-SYSTEM/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid account number or password")
	ErrAccountDeactivated = errors.New("account is deactivated")
)

// AuthService verifies credentials and issues session tokens for the HTTP
// layer. Secrets are stored bcrypt-hashed; the secret is checked before the
// active flag, so a deactivated account with the correct secret reports
// deactivation rather than bad credentials.
type AuthService struct {
	accounts      AccountStore
	credentials   CredentialStore
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(accounts AccountStore, credentials CredentialStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		accounts:      accounts,
		credentials:   credentials,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Authenticate resolves an account number and secret to the internal account
// id. Unknown numbers and wrong secrets are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, accountNumber, secret string) (string, error) {
	account, err := s.accounts.GetByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	cred, err := s.credentials.GetByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte(secret)) != nil {
		utils.LogWarning("AuthService", "failed login for account number %s", accountNumber)
		return "", ErrInvalidCredentials
	}

	if !cred.IsActive {
		utils.LogWarning("AuthService", "login attempt on deactivated account %s", account.ID)
		return "", ErrAccountDeactivated
	}

	utils.LogSuccess("AuthService", "account %s authenticated", account.ID)
	return account.ID, nil
}

// ChangeSecret replaces the account's secret. Empty secrets are rejected.
func (s *AuthService) ChangeSecret(ctx context.Context, accountID, newSecret string) error {
	if strings.TrimSpace(newSecret) == "" {
		return ErrEmptySecret
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newSecret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.credentials.UpdateSecret(ctx, accountID, string(hash)); err != nil {
		return err
	}

	utils.LogSuccess("AuthService", "secret changed for account %s", accountID)
	return nil
}

type Claims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

func (s *AuthService) GenerateToken(accountID string) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtExpiration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
