package users_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-backend/internal/auth"
	"weather-backend/internal/models"
	"weather-backend/internal/services/users"
	"weather-backend/internal/storage"
	"weather-backend/pkg/logger"
)

type mockStore struct {
	users      map[string]*models.User
	byID       map[int]*models.User
	nextID     int
	passwords  map[int]string
	bundles    map[int]*models.SettingsBundle
	patches    []models.SettingsPatch
	favorites  map[int]models.FavoriteLocation
	wishlist   map[int][]models.FavoriteLocation
	linkedWeb  int
	deletedBot int
}

func newMockStore() *mockStore {
	return &mockStore{
		users:     map[string]*models.User{},
		byID:      map[int]*models.User{},
		passwords: map[int]string{},
		bundles:   map[int]*models.SettingsBundle{},
		favorites: map[int]models.FavoriteLocation{},
		wishlist:  map[int][]models.FavoriteLocation{},
	}
}

func (m *mockStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.Login]; ok {
		return storage.ErrConflict
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Login] = user
	m.byID[user.ID] = user
	bundle := models.DefaultSettingsBundle()
	m.bundles[user.ID] = &bundle
	return nil
}

func (m *mockStore) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	user, ok := m.users[login]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (m *mockStore) UserByBotName(ctx context.Context, botName string) (*models.User, error) {
	for _, user := range m.users {
		if user.BotName != nil && *user.BotName == botName {
			return user, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *mockStore) UserByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (m *mockStore) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	m.passwords[userID] = passwordHash
	return nil
}

func (m *mockStore) LinkAccounts(ctx context.Context, webUserID, botUserID int, botID *int64, botName *string) error {
	m.linkedWeb = webUserID
	m.deletedBot = botUserID
	return nil
}

func (m *mockStore) SettingsBundle(ctx context.Context, userID int) (*models.SettingsBundle, error) {
	bundle, ok := m.bundles[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return bundle, nil
}

func (m *mockStore) UpdateSettings(ctx context.Context, userID int, patch models.SettingsPatch) error {
	m.patches = append(m.patches, patch)
	return nil
}

func (m *mockStore) UpsertFavorite(ctx context.Context, userID int, loc models.FavoriteLocation) error {
	m.favorites[userID] = loc
	return nil
}

func (m *mockStore) Favorite(ctx context.Context, userID int) (*models.FavoriteLocation, error) {
	loc, ok := m.favorites[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &loc, nil
}

func (m *mockStore) AddWishlist(ctx context.Context, userID int, loc models.FavoriteLocation) error {
	for _, existing := range m.wishlist[userID] {
		if existing.LocID == loc.LocID {
			return storage.ErrConflict
		}
	}
	m.wishlist[userID] = append(m.wishlist[userID], loc)
	return nil
}

func (m *mockStore) Wishlist(ctx context.Context, userID int) ([]models.FavoriteLocation, error) {
	return m.wishlist[userID], nil
}

func (m *mockStore) DeleteWishlist(ctx context.Context, userID, locID int) error {
	for i, existing := range m.wishlist[userID] {
		if existing.LocID == locID {
			m.wishlist[userID] = append(m.wishlist[userID][:i], m.wishlist[userID][i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func newService(store users.Store) *users.UserService {
	l := logger.NewZapLogger("users-test", "test", "error", io.Discard)
	return users.NewUserService(store, auth.NewTokenManager("test-secret", 60), l)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	user, err := svc.Register(context.Background(), "alice@example.com", "s3cret", nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password)

	token, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
}

func TestRegister_BotOnlyGeneratesLogin(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	botID := int64(12345)
	botName := "alice_tg"

	user, err := svc.Register(context.Background(), "", "", &botID, &botName)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(user.Login, "@bot.com"))
	assert.Empty(t, user.Password)
}

func TestRegister_NoPasswordNoBot(t *testing.T) {
	svc := newService(newMockStore())

	_, err := svc.Register(context.Background(), "alice@example.com", "", nil, nil)
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestRegister_DuplicateLogin(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", nil, nil)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@example.com", "other", nil, nil)
	assert.ErrorIs(t, err, storage.ErrConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret", nil, nil)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newService(newMockStore())

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	user, err := svc.Register(context.Background(), "alice@example.com", "old-pw", nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "old-pw", "new-pw"))
	assert.NotEmpty(t, store.passwords[user.ID])

	err = svc.ChangePassword(context.Background(), user.ID, "bogus", "another")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestLinkAccounts(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	web, err := svc.Register(context.Background(), "alice@example.com", "s3cret", nil, nil)
	require.NoError(t, err)

	botID := int64(777)
	botName := "alice_tg"
	bot, err := svc.Register(context.Background(), "", "", &botID, &botName)
	require.NoError(t, err)

	require.NoError(t, svc.LinkAccounts(context.Background(), web.ID, "alice_tg"))
	assert.Equal(t, web.ID, store.linkedWeb)
	assert.Equal(t, bot.ID, store.deletedBot)
}

func TestSaveLocation(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	loc := models.FavoriteLocation{LocID: 2801268, LocName: "London", LocCountry: "United Kingdom"}

	require.NoError(t, svc.SaveLocation(context.Background(), 1, users.TargetFavorites, loc))
	assert.Equal(t, loc, store.favorites[1])

	require.NoError(t, svc.SaveLocation(context.Background(), 1, users.TargetWishlist, loc))
	err := svc.SaveLocation(context.Background(), 1, users.TargetWishlist, loc)
	assert.ErrorIs(t, err, storage.ErrConflict)

	err = svc.SaveLocation(context.Background(), 1, "elsewhere", loc)
	assert.ErrorIs(t, err, users.ErrUnknownTarget)
}

func TestWishlistDelete(t *testing.T) {
	store := newMockStore()
	svc := newService(store)

	loc := models.FavoriteLocation{LocID: 2801268, LocName: "London"}
	require.NoError(t, svc.SaveLocation(context.Background(), 1, users.TargetWishlist, loc))

	list, err := svc.Wishlist(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteWishlist(context.Background(), 1, 2801268))
	assert.ErrorIs(t, svc.DeleteWishlist(context.Background(), 1, 2801268), storage.ErrNotFound)
}
