package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"seedstore_backend/internal/events"
	"seedstore_backend/internal/users/repository"
	"seedstore_backend/internal/users/transport"
	"seedstore_backend/platform/apperr"
	"seedstore_backend/platform/logger"
)

type fakeRepo struct {
	users     map[int64]repository.User
	addresses map[int64]repository.Address
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]repository.User{}, addresses: map[int64]repository.Address{}}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return u, nil
}

func (f *fakeRepo) GetByIDs(_ context.Context, ids []int64) ([]repository.User, error) {
	var out []repository.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return repository.User{}, apperr.NotFound("user not found")
}

func (f *fakeRepo) List(context.Context, repository.ListParams) ([]repository.User, error) {
	var out []repository.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(_ context.Context, p repository.CreateUserParams) (repository.User, error) {
	f.nextID++
	u := repository.User{
		ID:             f.nextID,
		Email:          p.Email,
		HashedPassword: p.HashedPassword,
		FullName:       p.FullName,
		IsActive:       true,
		IsSuperuser:    p.IsSuperuser,
		Theme:          "light",
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) CreateIfAbsent(ctx context.Context, p repository.CreateUserParams) (repository.User, bool, error) {
	if u, err := f.GetByEmail(ctx, p.Email); err == nil {
		return u, false, nil
	}
	u, err := f.Create(ctx, p)
	return u, true, err
}

func (f *fakeRepo) SetSuperuser(_ context.Context, id int64) (repository.User, error) {
	u := f.users[id]
	u.IsSuperuser = true
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, p repository.UpdateUserParams) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Theme != nil {
		u.Theme = *p.Theme
	}
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) SetActive(_ context.Context, id int64, active bool) (repository.User, error) {
	u := f.users[id]
	u.IsActive = active
	f.users[id] = u
	return u, nil
}

func (f *fakeRepo) SaveProfile(_ context.Context, userID int64, p repository.ProfileParams) (repository.User, error) {
	f.addresses[userID] = repository.Address{
		ID:         userID,
		UserID:     userID,
		Surname:    p.Surname,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
	}
	u := f.users[userID]
	u.Verified = p.Verified
	f.users[userID] = u
	return u, nil
}

func (f *fakeRepo) GetAddress(_ context.Context, userID int64) (*repository.Address, error) {
	a, ok := f.addresses[userID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

type superusers []string

func (s superusers) GetSuperuserEmails() []string { return s }

type provisionRecorder struct {
	mu     sync.Mutex
	events []events.UserProvisioned
}

func newUsersService(t *testing.T) (*Service, *fakeRepo, *events.InMemoryBus, *provisionRecorder) {
	t.Helper()
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	rec := &provisionRecorder{}
	bus.Subscribe(events.UserProvisioned{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.events = append(rec.events, e.(events.UserProvisioned))
		return nil
	}))
	repo := newFakeRepo()
	return New(repo, superusers{"boss@seedstore.by"}, bus, log), repo, bus, rec
}

func TestResolvePrincipalProvisionsOnce(t *testing.T) {
	svc, repo, bus, rec := newUsersService(t)
	ctx := context.Background()

	first, err := svc.ResolvePrincipal(ctx, "Anna@Example.com")
	require.NoError(t, err)
	second, err := svc.ResolvePrincipal(ctx, "anna@example.com")
	require.NoError(t, err)
	bus.Wait()

	assert.Equal(t, first.UserID, second.UserID)
	assert.True(t, first.IsActive)
	assert.False(t, first.IsSuperuser)
	assert.Equal(t, "anna", repo.users[first.UserID].FullName)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "anna@example.com", rec.events[0].Email)
}

func TestResolvePrincipalSuperuserEmails(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()

	p, err := svc.ResolvePrincipal(ctx, "boss@seedstore.by")
	require.NoError(t, err)
	assert.True(t, p.IsSuperuser)

	existing, err := repo.Create(ctx, repository.CreateUserParams{Email: "late@seedstore.by"})
	require.NoError(t, err)
	svc.cfg = superusers{"late@seedstore.by"}

	p, err = svc.ResolvePrincipal(ctx, "late@seedstore.by")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, p.UserID)
	assert.True(t, p.IsSuperuser)
}

func TestResolvePrincipalRejectsEmptyEmail(t *testing.T) {
	svc, _, _, _ := newUsersService(t)
	_, err := svc.ResolvePrincipal(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUpdateProfile(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()
	u, err := repo.Create(ctx, repository.CreateUserParams{Email: "ivan@example.com", FullName: "Иван"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, u.ID, transport.ProfileRequest{Phone: "375291234567", PostalCode: "220000"})
	require.Error(t, err)
	assert.Equal(t, msgInvalidPhone, err.Error())

	_, err = svc.UpdateProfile(ctx, u.ID, transport.ProfileRequest{Phone: "+375 29 123-45-67", PostalCode: "2200"})
	require.Error(t, err)
	assert.Equal(t, msgInvalidPostalCode, err.Error())

	partial, err := svc.UpdateProfile(ctx, u.ID, transport.ProfileRequest{Phone: "+375 29 123-45-67", PostalCode: "220000"})
	require.NoError(t, err)
	assert.False(t, partial.Verified)

	full, err := svc.UpdateProfile(ctx, u.ID, transport.ProfileRequest{
		Surname:    "Петров",
		Phone:      "+375 29 123-45-67",
		Address:    "ул. Ленина, 1",
		City:       "Минск",
		PostalCode: "220000",
	})
	require.NoError(t, err)
	assert.True(t, full.Verified)
	require.Len(t, full.Addresses, 1)
	assert.Equal(t, "Минск", full.Addresses[0].City)
	assert.Equal(t, "Иван", full.FullName)
}

func TestGetRequiresSelfOrSuperuser(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()
	a, _ := repo.Create(ctx, repository.CreateUserParams{Email: "a@example.com"})
	b, _ := repo.Create(ctx, repository.CreateUserParams{Email: "b@example.com"})

	_, err := svc.Get(ctx, a.ID, b.ID, false)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	got, err := svc.Get(ctx, a.ID, b.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
	assert.Empty(t, got.Addresses)
}

func TestCreateHashesPasswordAndRejectsDuplicates(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, transport.CreateUserRequest{Email: "New@Example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", created.Email)
	assert.Equal(t, "new", created.FullName)

	stored := repo.users[created.ID]
	require.NotNil(t, stored.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.HashedPassword), []byte("secret-pass")))

	_, err = svc.Create(ctx, transport.CreateUserRequest{Email: "new@example.com", Password: "another-pass"})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

func TestSetActiveRefusesSuperusers(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()
	boss, _ := repo.Create(ctx, repository.CreateUserParams{Email: "boss@seedstore.by", IsSuperuser: true})
	user, _ := repo.Create(ctx, repository.CreateUserParams{Email: "u@example.com"})
	off := false

	_, err := svc.SetActive(ctx, boss.ID, transport.BlockRequest{IsActive: &off})
	require.Error(t, err)
	assert.Equal(t, msgCannotBlock, err.Error())

	blocked, err := svc.SetActive(ctx, user.ID, transport.BlockRequest{IsActive: &off})
	require.NoError(t, err)
	assert.False(t, blocked.IsActive)
}

func TestSetTheme(t *testing.T) {
	svc, repo, _, _ := newUsersService(t)
	ctx := context.Background()
	u, _ := repo.Create(ctx, repository.CreateUserParams{Email: "t@example.com"})

	got, err := svc.SetTheme(ctx, u.ID, transport.ThemeRequest{Theme: "dark"})
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
}
