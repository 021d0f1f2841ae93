// Package users implements accounts, authentication and preference
// management.
package users

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"weather-backend/internal/auth"
	"weather-backend/internal/models"
	"weather-backend/internal/storage"
	"weather-backend/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUnknownTarget      = errors.New("unknown location target")
)

// Location save targets.
const (
	TargetFavorites = "favorites"
	TargetWishlist  = "wishlist"
)

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByLogin(ctx context.Context, login string) (*models.User, error)
	UserByBotName(ctx context.Context, botName string) (*models.User, error)
	UserByID(ctx context.Context, id int) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error
	LinkAccounts(ctx context.Context, webUserID, botUserID int, botID *int64, botName *string) error
	SettingsBundle(ctx context.Context, userID int) (*models.SettingsBundle, error)
	UpdateSettings(ctx context.Context, userID int, patch models.SettingsPatch) error
	UpsertFavorite(ctx context.Context, userID int, loc models.FavoriteLocation) error
	Favorite(ctx context.Context, userID int) (*models.FavoriteLocation, error)
	AddWishlist(ctx context.Context, userID int, loc models.FavoriteLocation) error
	Wishlist(ctx context.Context, userID int) ([]models.FavoriteLocation, error)
	DeleteWishlist(ctx context.Context, userID, locID int) error
}

// UserService represents the user service.
type UserService struct {
	store  Store
	tokens *auth.TokenManager
	l      *logger.Logger
}

func NewUserService(store Store, tokens *auth.TokenManager, l *logger.Logger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		l:      l,
	}
}

// Register creates an account with its default preference rows. A request
// without a password registers a bot-only account under a generated login.
func (s *UserService) Register(ctx context.Context, login, password string, botID *int64, botName *string) (*models.User, error) {
	user := &models.User{
		Login:   login,
		BotID:   botID,
		BotName: botName,
	}

	if password == "" {
		if botID == nil {
			return nil, errors.Wrap(ErrInvalidCredentials, "password is required")
		}
		user.Login = uuid.NewString() + "@bot.com"
	} else {
		hash, err := models.HashPassword(password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.Password = hash
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.l.Info("user registered", map[string]any{"user_id": user.ID, "bot": password == ""})
	return user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, login, password string) (auth.TokenInfo, error) {
	user, err := s.store.UserByLogin(ctx, login)
	if errors.Is(err, storage.ErrNotFound) {
		return auth.TokenInfo{}, ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenInfo{}, errors.Wrap(err, "failed to load user")
	}

	if !user.VerifyPassword(password) {
		return auth.TokenInfo{}, ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Login)
}

// ChangePassword swaps the password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load user")
	}

	if !user.VerifyPassword(oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := models.HashPassword(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	return s.store.UpdatePassword(ctx, userID, hash)
}

// LinkAccounts merges a bot-only account into the caller's web account: the
// bot identity moves over and the bot-only row is removed.
func (s *UserService) LinkAccounts(ctx context.Context, webUserID int, botName string) error {
	bot, err := s.store.UserByBotName(ctx, botName)
	if err != nil {
		return errors.Wrap(err, "failed to load bot account")
	}

	if err := s.store.LinkAccounts(ctx, webUserID, bot.ID, bot.BotID, bot.BotName); err != nil {
		return errors.Wrap(err, "failed to link accounts")
	}

	s.l.Info("accounts linked", map[string]any{"user_id": webUserID, "bot_id": bot.BotID})
	return nil
}

func (s *UserService) Settings(ctx context.Context, userID int) (*models.SettingsBundle, error) {
	return s.store.SettingsBundle(ctx, userID)
}

func (s *UserService) UpdateSettings(ctx context.Context, userID int, patch models.SettingsPatch) error {
	return s.store.UpdateSettings(ctx, userID, patch)
}

// SaveLocation stores a location in the requested slot: the single favorite
// or the wishlist.
func (s *UserService) SaveLocation(ctx context.Context, userID int, target string, loc models.FavoriteLocation) error {
	switch target {
	case TargetFavorites:
		return s.store.UpsertFavorite(ctx, userID, loc)
	case TargetWishlist:
		return s.store.AddWishlist(ctx, userID, loc)
	}
	return errors.Wrapf(ErrUnknownTarget, "target %q", target)
}

func (s *UserService) UpdateFavorite(ctx context.Context, userID int, loc models.FavoriteLocation) error {
	return s.store.UpsertFavorite(ctx, userID, loc)
}

func (s *UserService) Favorite(ctx context.Context, userID int) (*models.FavoriteLocation, error) {
	return s.store.Favorite(ctx, userID)
}

func (s *UserService) Wishlist(ctx context.Context, userID int) ([]models.FavoriteLocation, error) {
	return s.store.Wishlist(ctx, userID)
}

func (s *UserService) DeleteWishlist(ctx context.Context, userID, locID int) error {
	return s.store.DeleteWishlist(ctx, userID, locID)
}
