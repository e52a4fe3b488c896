package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/ems-backend-go/internal/domain/auth"
	"github.com/attendly/ems-backend-go/internal/domain/notification"
	"github.com/attendly/ems-backend-go/internal/domain/user"
	"github.com/attendly/ems-backend-go/internal/pkg/database"
	"github.com/attendly/ems-backend-go/internal/pkg/jwt"
	"github.com/attendly/ems-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	notifier notification.NotificationService
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, notifier notification.NotificationService) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		notifier:       notifier,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// hashToken digests a JWT for at-rest storage. Tokens exceed bcrypt's
// 72-byte input limit, so they get SHA-256 instead; raw tokens are
// never persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Email:              req.Email,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PasswordHash:       hashedPassword,
		EmployeeIdentifier: user.NewEmployeeIdentifier(),
		PhoneNumber:        req.PhoneNumber,
		Role:               user.RoleEmployee,
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.TokenResponse{}, auth.ErrEmailAlreadyExists
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenResponse, err := a.issueTokenPair(ctx, created)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	// Welcome email is best effort; registration already committed.
	if err := a.notifier.QueueWelcomeEmail(ctx, created, ""); err != nil {
		slog.Error("failed to queue welcome email", "user_id", created.ID, "error", err)
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// Same error for unknown email and bad password; the
			// response must not reveal which accounts exist.
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	tokenResponse, err := a.issueTokenPair(ctx, userData)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.UserRepository.UpdateLastLogin(ctx, userData.ID); err != nil {
		slog.Error("failed to update last login", "user_id", userData.ID, "error", err)
	}

	return tokenResponse, nil
}

// issueTokenPair generates both tokens and stores the refresh token
// hash on the user row inside one transaction.
func (a *AuthServiceImpl) issueTokenPair(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var tokenResponse auth.TokenResponse
	tokenResponse.User = user.ToResponse(userData)

	err := postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		refreshHash := hashToken(tokenResponse.RefreshToken)
		expiresAt := time.Unix(tokenResponse.RefreshTokenExpiresIn, 0)
		if err := a.UserRepository.UpdateRefreshToken(txCtx, userData.ID, &refreshHash, &expiresAt); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// RefreshToken implements auth.AuthService. The pair rotates: the old
// refresh token's hash is replaced in the same transaction.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	userID, err := a.Service.ValidateToken(req.RefreshToken, "refresh")
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	if userData.RefreshTokenHash == nil || *userData.RefreshTokenHash != hashToken(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenMismatch
	}
	if userData.RefreshTokenExpiresAt == nil || time.Now().After(*userData.RefreshTokenExpiresAt) {
		return auth.AccessTokenResponse{}, auth.ErrTokenExpired
	}

	pair, err := a.issueTokenPair(ctx, userData)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	return auth.AccessTokenResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresIn:  pair.AccessTokenExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshTokenExpiresIn,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, userID string) error {
	if err := a.UserRepository.UpdateRefreshToken(ctx, userID, nil, nil); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrInvalidToken
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// ForgotPassword implements auth.AuthService. Unknown emails succeed
// silently to prevent account enumeration.
func (a *AuthServiceImpl) ForgotPassword(ctx context.Context, req auth.ForgotPasswordRequest) error {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	resetToken, expiresAt, err := a.Service.GeneratePasswordResetToken(userData.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := a.UserRepository.UpdateResetToken(ctx, userData.ID, hashToken(resetToken), time.Unix(expiresAt, 0)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := a.notifier.QueuePasswordResetEmail(ctx, userData, resetToken); err != nil {
		slog.Error("failed to queue password reset email", "user_id", userData.ID, "error", err)
	}

	return nil
}

// ResetPassword implements auth.AuthService.
func (a *AuthServiceImpl) ResetPassword(ctx context.Context, req auth.ResetPasswordRequest) error {
	userID, err := a.Service.ValidateToken(req.Token, "reset")
	if err != nil {
		return auth.ErrResetTokenInvalid
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.ErrResetTokenInvalid
	}

	if userData.PasswordResetTokenHash == nil || *userData.PasswordResetTokenHash != hashToken(req.Token) {
		return auth.ErrResetTokenInvalid
	}
	if userData.PasswordResetExpiresAt == nil || time.Now().After(*userData.PasswordResetExpiresAt) {
		return auth.ErrResetTokenInvalid
	}

	hashedPassword, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the reset token in the same statement.
	if err := a.UserRepository.UpdatePassword(ctx, userData.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
