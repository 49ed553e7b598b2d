package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers accounts and authenticates logins against the
// injected storage handle.
type AuthService struct {
	db       *sql.DB
	secret   []byte
	cost     int
	tokenTTL time.Duration
}

func NewAuthService(db *sql.DB, secret []byte, cost int, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: secret, cost: cost, tokenTTL: tokenTTL}
}

// Register hashes the password and stores a new user, returning the
// generated id. A duplicate username surfaces as ErrUsernameTaken via the
// unique constraint.
func (s *AuthService) Register(username, password string) (int, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, err
	}

	var userID int
	err = s.db.QueryRow(
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id",
		username, string(hashed)).Scan(&userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}
	return userID, nil
}

// Login verifies the credentials and issues a signed token carrying the
// user id. An unknown username and a wrong password both come back as
// ErrInvalidCredentials so the caller cannot tell which check failed.
func (s *AuthService) Login(username, password string) (string, error) {
	var (
		userID int
		hash   string
	)
	err := s.db.QueryRow(
		"SELECT id, password FROM users WHERE username = $1",
		username).Scan(&userID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	// hash -> password yang ada di database
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// Token berisi user_id dan exp saja
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
