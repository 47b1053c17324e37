// Package services contains server-side business logic. This file implements
// AccountService, which orchestrates registration, authentication, profile
// mutation, and search over the accounts repository.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilehub/internal/common"
	"github.com/dmitrijs2005/profilehub/internal/logging"
	"github.com/dmitrijs2005/profilehub/internal/server/auth"
	"github.com/dmitrijs2005/profilehub/internal/server/config"
	"github.com/dmitrijs2005/profilehub/internal/server/hasher"
	"github.com/dmitrijs2005/profilehub/internal/server/models"
	"github.com/dmitrijs2005/profilehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/profilehub/internal/server/storage"
)

const (
	// avatarsFolder is the logical folder for profile pictures in the object store.
	avatarsFolder = "avatars"

	// handleSuffixLength is the number of random characters appended to a
	// requested username when deriving the display handle.
	handleSuffixLength = 6
)

// RegisterParams carries the registration input. Password is the transient
// plaintext; Register wipes it once the hash is computed.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	UserName  string
	Password  []byte
	Role      string
}

// AccountService provides the account lifecycle operations:
//   - Register: create accounts with unique email/phone and a derived handle
//   - Login: verify credentials and mint an access token
//   - profile mutation, deletion, lookup, and handle search
type AccountService struct {
	repo                        accounts.Repository
	hasher                      hasher.Hasher
	store                       storage.ObjectStore
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAccountService constructs an AccountService using the repository,
// hasher, object store, and server config.
func NewAccountService(repo accounts.Repository, h hasher.Hasher, store storage.ObjectStore, l logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		repo:                        repo,
		hasher:                      h,
		store:                       store,
		logger:                      l.With("module", "account_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// parseID validates an external identifier as a positive integer. Malformed
// values are rejected here so they never reach the store.
func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, common.ErrInvalidInput
	}
	return n, nil
}

// Register creates a new account. Email is checked before phone, so a
// request colliding on both reports the email conflict. The pre-checks and
// the insert are not atomic; concurrent registrations with the same
// credentials are caught by the store's unique constraints, which surface
// here as the same ErrEmailTaken/ErrPhoneTaken.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*models.Account, error) {

	if _, err := s.repo.GetByEmail(ctx, p.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	if _, err := s.repo.GetByPhone(ctx, p.Phone); err == nil {
		return nil, common.ErrPhoneTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking phone: %w", err)
	}

	// The suffix makes the handle unique enough in practice; collisions are
	// accepted as negligible and not re-checked.
	suffix, err := common.MakeRandAlphanumeric(handleSuffixLength)
	if err != nil {
		return nil, common.ErrInternal
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, common.ErrInternal
	}
	common.WipeByteArray(p.Password)

	account := &models.Account{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		UserName:     fmt.Sprintf("@%s_%s", p.UserName, suffix),
		PasswordHash: hash,
		Role:         p.Role,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) || errors.Is(err, common.ErrPhoneTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	return created, nil
}

// Login verifies the email/password pair and returns a signed access token.
// Unknown email and wrong password both surface ErrInvalidCredentials; the
// causes are distinguished only in the logs.
func (s *AccountService) Login(ctx context.Context, email string, password []byte) (string, error) {
	defer common.WipeByteArray(password)

	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login failed", "reason", "unknown email")
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrInternal
	}

	if err := s.hasher.Compare(password, account.PasswordHash); err != nil {
		s.logger.Warn(ctx, "login failed", "reason", "wrong password", "account_id", account.ID)
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, account.Email, account.Role, account.UserName,
		s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}

// UploadAvatar stores the raw image bytes in the object store and returns
// the resulting URL. It does not touch any account record.
func (s *AccountService) UploadAvatar(ctx context.Context, data []byte) (string, error) {
	url, err := s.store.Upload(ctx, data, avatarsFolder)
	if err != nil {
		s.logger.Error(ctx, "avatar upload failed", "error", err.Error())
		return "", common.ErrUploadFailed
	}
	return url, nil
}

// SetAvatar overwrites the avatar reference of the account and saves the
// whole record.
func (s *AccountService) SetAvatar(ctx context.Context, id string, url string) (*models.Account, error) {
	accountID, err := parseID(id)
	if err != nil {
		return nil, common.ErrNotFound
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.AvatarURL = url

	return s.repo.Update(ctx, account)
}

// UpdateProfile merges the provided fields onto the stored record and saves
// it. Unset patch fields keep their current values. Returns a confirmation
// message rather than the updated record.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, patch models.AccountPatch) (string, error) {
	accountID, err := parseID(id)
	if err != nil {
		return "", err
	}

	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}

	if patch.FirstName != nil {
		account.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		account.LastName = *patch.LastName
	}
	if patch.Email != nil {
		account.Email = *patch.Email
	}
	if patch.Phone != nil {
		account.Phone = *patch.Phone
	}
	if patch.Role != nil {
		account.Role = *patch.Role
	}

	updated, err := s.repo.Update(ctx, account)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Profile of %s updated successfully", updated.FirstName), nil
}

// Delete removes the account permanently.
func (s *AccountService) Delete(ctx context.Context, id string) (string, error) {
	accountID, err := parseID(id)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.GetByID(ctx, accountID); err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, accountID); err != nil {
		return "", err
	}

	return "Account deleted successfully", nil
}

// GetOne returns the full account record.
func (s *AccountService) GetOne(ctx context.Context, id string) (*models.Account, error) {
	accountID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, accountID)
}

// GetAll returns every account, unfiltered and unpaginated.
func (s *AccountService) GetAll(ctx context.Context) ([]*models.Account, error) {
	return s.repo.GetAll(ctx)
}

// SearchByName returns accounts whose display handle contains the given
// substring, case-insensitively. Order is store-determined.
func (s *AccountService) SearchByName(ctx context.Context, substring string) ([]*models.Account, error) {
	if strings.TrimSpace(substring) == "" {
		return nil, common.ErrInvalidInput
	}
	return s.repo.SearchByUserName(ctx, substring)
}
