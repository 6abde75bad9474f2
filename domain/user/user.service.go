package user

import (
	"braindumpBackend/auth"
	"braindumpBackend/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
)

type (
	Service interface {
		GetById(ctx context.Context, userId string) (UserOut, error)
		Register(ctx context.Context, req RegistrationIn) (UserOut, error)
		LoginNative(ctx context.Context, req CredentialsIn) (string, string, error)
		GetAuthConfig() AuthConfigOut
		GetAuthCodeURL(stateToken string) (string, error)
		RefreshAccessToken(authToken string) (string, error)
		AuthenticateWithCode(ctx context.Context, authCode string) (string, string, error)
	}

	userService struct {
		userRepo    Repository
		authManager auth.AuthManager
	}
)

func CreateService(userRepo Repository, authManager auth.AuthManager) Service {
	return &userService{
		userRepo:    userRepo,
		authManager: authManager,
	}
}

func (s *userService) GetById(ctx context.Context, userId string) (UserOut, error) {
	user, err := s.userRepo.GetById(ctx, userId)
	if err != nil {
		return UserOut{}, err
	}

	return s.userRepo.UserToOut(*user), nil
}

func (s *userService) Register(ctx context.Context, req RegistrationIn) (UserOut, error) {
	if !s.authManager.IsNativeEnabled() {
		return UserOut{}, utils.ErrNativeAuthDisabled
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return UserOut{}, fmt.Errorf("%w: name is required", utils.ErrValidationError)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("[AUTH] Failed to hash password: %s", err.Error())
		return UserOut{}, fmt.Errorf("%w: password cannot be used", utils.ErrValidationError)
	}

	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return UserOut{}, fmt.Errorf("%w: email is already registered", utils.ErrConflict)
	} else if !errors.Is(err, utils.ErrNotFound) {
		return UserOut{}, err
	}

	hash := string(passwordHash)
	user := &User{
		ID:           utils.GenerateUuid(),
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return UserOut{}, fmt.Errorf("%w: email is already registered", utils.ErrConflict)
		}
		return UserOut{}, err
	}

	return s.userRepo.UserToOut(*user), nil
}

func (s *userService) LoginNative(ctx context.Context, req CredentialsIn) (string, string, error) {
	if !s.authManager.IsNativeEnabled() {
		return "", "", utils.ErrNativeAuthDisabled
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, utils.ErrNotFound) {
		return "", "", utils.ErrInvalidCredentials
	} else if err != nil {
		return "", "", err
	}

	if user.PasswordHash == nil {
		return "", "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", utils.ErrInvalidCredentials
	}

	return s.createTokens(user.ID)
}

func (s *userService) GetAuthConfig() AuthConfigOut {
	return AuthConfigOut{
		Native: s.authManager.IsNativeEnabled(),
		OpenId: s.authManager.IsOpenIdEnabled(),
	}
}

func (s *userService) RefreshAccessToken(authToken string) (string, error) {
	return s.authManager.RefreshAccessToken(authToken)
}

func (s *userService) GetAuthCodeURL(stateToken string) (string, error) {
	return s.authManager.GetAuthCodeURL(stateToken)
}

func (s *userService) AuthenticateWithCode(ctx context.Context, authCode string) (string, string, error) {
	authUser, err := s.authManager.AuthenticateWithCode(ctx, authCode, func(userSub string, userEmail string, userName string) (string, error) {
		user, userExists, err := s.userRepo.GetBySub(ctx, userSub)
		if err != nil {
			return "", err
		}

		if userEmail == "" {
			// Accounts without an email are keyed by their subject
			userEmail = userSub
		}
		if userName == "" {
			userName = userEmail
		}

		if !userExists {
			// Create the user if not registered yet
			user = &User{
				ID:    utils.GenerateUuid(),
				Email: normalizeEmail(userEmail),
				Sub:   &userSub,
				Name:  userName,
			}
			err = s.userRepo.Create(ctx, user)
		} else {
			// Update the name of the user in case it has changed
			user.Name = userName
			err = s.userRepo.Update(ctx, user)
		}

		return user.ID, err
	})
	if err != nil {
		return "", "", err
	}

	return s.createTokens(authUser.UserId)
}

func (s *userService) createTokens(userId string) (string, string, error) {
	if authToken, err := s.authManager.CreateAuthToken(userId); err != nil {
		return "", "", err
	} else if accessToken, err := s.authManager.CreateAccessToken(userId); err != nil {
		return "", "", err
	} else {
		return authToken, accessToken, nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
