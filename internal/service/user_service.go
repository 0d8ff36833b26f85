package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"confidencevoice/internal/entity"
	"confidencevoice/internal/repository"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo  *repository.UserRepository
	rdb       *redis.Client
	secret    []byte
	ttl       time.Duration
	validator *Validator
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client, secret string, ttl time.Duration, validator *Validator) *UserService {
	return &UserService{userRepo: userRepo, rdb: rdb, secret: []byte(secret), ttl: ttl, validator: validator}
}

func sessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *UserService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, &entity.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
	})
	if err != nil {
		err = translate(err, "email")
		if !errors.Is(err, ErrConflict) {
			logger.Error().Err(err).Msg("Error creating user")
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a signed token carrying the role. The token
// is also kept in redis as the live session; every authenticated request is checked
// against it, so ending the session revokes the token.
func (s *UserService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		logger.Error().Err(err).Msg("Error looking up user")
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		logger.Warn().Msgf("Failed login for user %d", user.ID)
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Set(ctx, sessionKey(user.ID), token, s.ttl).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error storing session of user %d", user.ID)
		return nil, err
	}
	return &entity.LoginResponse{Token: token, UserID: user.ID, Role: user.Role}, nil
}

func (s *UserService) issueToken(user *entity.User) (string, error) {
	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies the signature and expiry of a token.
func (s *UserService) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnauthorized)
	}
	return claims, nil
}

// ValidateToken is used by the analysis services to check a bearer token. The token
// must be valid, still be the live session and belong to an existing user.
func (s *UserService) ValidateToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}

	if err := s.CheckSession(ctx, claims.UserID, token); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// CheckSession fails with ErrUnauthorized unless token is the live session of userID.
// Logging in again, changing the password, a role or email change by an admin and
// deleting the user all end the session.
func (s *UserService) CheckSession(ctx context.Context, userID int, token string) error {
	live, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("session not found: %w", ErrUnauthorized)
		}
		logger.Error().Err(err).Msgf("Error reading session of user %d", userID)
		return err
	}
	if live != token {
		return fmt.Errorf("session replaced: %w", ErrUnauthorized)
	}
	return nil
}

func (s *UserService) endSession(ctx context.Context, userID int) {
	if err := s.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		logger.Warn().Err(err).Msgf("Error ending session of user %d", userID)
	}
}

// ChangePassword replaces the password of the session user and ends the stored session.
func (s *UserService) ChangePassword(ctx context.Context, sess Session, req *entity.ChangePasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	user, err := s.userRepo.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("current password is incorrect: %w", ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		logger.Error().Err(err).Msgf("Error updating password of user %d", user.ID)
		return err
	}
	s.endSession(ctx, user.ID)
	return nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting users")
		return nil, err
	}
	return users, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *entity.UpdateUserRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	err := s.userRepo.UpdateUser(ctx, &entity.User{
		ID:    id,
		Name:  strings.TrimSpace(req.Name),
		Email: strings.ToLower(req.Email),
		Role:  req.Role,
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error updating user %d", id)
		}
		return translate(err, "email")
	}
	// the token carries the old role and email
	s.endSession(ctx, id)
	return nil
}

// DeleteUser removes a user. Admins cannot delete their own account.
func (s *UserService) DeleteUser(ctx context.Context, sess Session, id int) error {
	if sess.UserID == id {
		return invalid("id", "You cannot delete your own account")
	}
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Msgf("Error deleting user %d", id)
		}
		return err
	}
	s.endSession(ctx, id)
	return nil
}
