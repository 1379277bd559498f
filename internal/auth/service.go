package auth

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"strconv"
	"time"

	userDatamodel "github.com/frahmantamala/finance-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/finance-dashboard/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	ShareCodeExists(code string) (bool, error)
}

// Service implements password hashing, share code generation and the
// session cookie lifecycle. The cookie value is an HMAC-signed token whose
// subject is the user id; a bare numeric cookie would let anyone mint a
// session for an arbitrary account.
type Service struct {
	users         UserStore
	sessionSecret []byte
	bcryptCost    int
	secureCookies bool
	logger        *slog.Logger
}

func NewService(users UserStore, sessionSecret string, bcryptCost int, secureCookies bool, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		users:         users,
		sessionSecret: []byte(sessionSecret),
		bcryptCost:    bcryptCost,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Register creates an account: duplicate email check, bcrypt hash, unique
// share code, session issued by the caller via SetSessionCookie.
func (s *Service) Register(dto RegisterDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(dto.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	shareCode, err := s.GenerateShareCode()
	if err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	row := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		ShareCode:    shareCode,
	}

	if err := s.users.Create(row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", "user_id", row.ID, "email", row.Email)
	return user.FromDataModel(row), nil
}

// Authenticate verifies credentials. Unknown email and wrong password both
// map to ErrInvalidCredentials so responses cannot be used to enumerate
// accounts.
func (s *Service) Authenticate(dto LoginDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.users.GetByEmail(dto.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(dto.Password, row.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user.FromDataModel(row), nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateShareCode draws 6-character codes until one is free, giving up
// after a fixed number of attempts rather than looping forever.
func (s *Service) GenerateShareCode() (string, error) {
	for attempt := 0; attempt < maxShareCodeAttempts; attempt++ {
		code, err := randomShareCode()
		if err != nil {
			return "", err
		}

		exists, err := s.users.ShareCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	s.logger.Error("share code generation exhausted retries", "attempts", maxShareCodeAttempts)
	return "", ErrShareCodeExhausted
}

func randomShareCode() (string, error) {
	buf := make([]byte, shareCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(shareCodeAlphabet))))
		if err != nil {
			return "", err
		}
		buf[i] = shareCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// SessionToken signs a token carrying the user id, valid as long as the
// cookie itself.
func (s *Service) SessionToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionMaxAge * time.Second)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
}

// ParseSessionToken returns the user id embedded in a session token, or
// false for anything invalid, expired or tampered with.
func (s *Service) ParseSessionToken(token string) (int64, bool) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.sessionSecret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, false
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// SessionUser resolves the request's session cookie to a user, or nil when
// the cookie is missing, invalid or points at a deleted account.
func (s *Service) SessionUser(r *http.Request) *user.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	userID, ok := s.ParseSessionToken(cookie.Value)
	if !ok {
		return nil
	}

	row, err := s.users.GetByID(userID)
	if err != nil {
		return nil
	}
	return user.FromDataModel(row)
}

// SetSessionCookie issues the session cookie: http-only, SameSite=Lax,
// secure in production, 7-day max age, path "/".
func (s *Service) SetSessionCookie(w http.ResponseWriter, userID int64) error {
	token, err := s.SessionToken(userID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie deletes the cookie with matching attributes.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
