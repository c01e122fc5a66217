package http_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"notetaker/internal/notes/app"
	"notetaker/internal/notes/domain/entities"
	"notetaker/internal/notes/domain/services"
	"notetaker/internal/notes/ports/repositories"
)

type mockProjectUseCase struct {
	mock.Mock
}

func (m *mockProjectUseCase) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *mockProjectUseCase) GetProjectNoteCounts(ctx context.Context) ([]entities.ProjectNoteCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProjectNoteCount), args.Error(1)
}

func (m *mockProjectUseCase) GetProject(ctx context.Context, id int) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *mockProjectUseCase) CreateProject(ctx context.Context, in app.ProjectInput) (*entities.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *mockProjectUseCase) UpdateProject(ctx context.Context, id int, in app.ProjectInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockProjectUseCase) DeleteProject(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockNoteUseCase struct {
	mock.Mock
}

func (m *mockNoteUseCase) ListNotes(ctx context.Context, callerID int, filter repositories.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, callerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) GetAttributeNoteCounts(ctx context.Context) ([]entities.AttributeNoteCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AttributeNoteCount), args.Error(1)
}

func (m *mockNoteUseCase) GetNote(ctx context.Context, id int) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) CreateNote(ctx context.Context, in app.NoteInput, projectID *int) (*entities.Note, error) {
	args := m.Called(ctx, in, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteUseCase) UpdateNote(ctx context.Context, id int, in app.NoteInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockNoteUseCase) DeleteNote(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockAttributeUseCase struct {
	mock.Mock
}

func (m *mockAttributeUseCase) ListAttributes(ctx context.Context) ([]*entities.Attribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attribute), args.Error(1)
}

func (m *mockAttributeUseCase) GetAttribute(ctx context.Context, id int) (*entities.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attribute), args.Error(1)
}

func (m *mockAttributeUseCase) CreateAttribute(ctx context.Context, in app.AttributeInput) (*entities.Attribute, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attribute), args.Error(1)
}

func (m *mockAttributeUseCase) UpdateAttribute(ctx context.Context, id int, in app.AttributeInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockAttributeUseCase) DeleteAttribute(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, in app.Credentials) (*entities.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) Login(ctx context.Context, in app.Credentials) (*app.LoginResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*app.LoginResult), args.Error(1)
}

func (m *mockUserUseCase) Logout(ctx context.Context, claims *services.TokenClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockUserUseCase) ListUsers(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserUseCase) GetUser(ctx context.Context, id int) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) UpdateUser(ctx context.Context, id int, in app.UserUpdate) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *mockUserUseCase) DeleteUser(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

// stubAuthenticator принимает единственный токен и возвращает заданные claims.
type stubAuthenticator struct {
	token  string
	claims *services.TokenClaims
}

func (s *stubAuthenticator) Authenticate(_ context.Context, token string) (*services.TokenClaims, error) {
	if token != s.token {
		return nil, app.ErrUnauthorized
	}
	return s.claims, nil
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

// memoryUnitOfWork хранит пользователей в памяти. Остальные репозитории
// в сквозном тесте не используются.
type memoryUnitOfWork struct {
	mu    sync.Mutex
	users map[int]*entities.User
	next  int
}

func newMemoryUnitOfWork() *memoryUnitOfWork {
	return &memoryUnitOfWork{users: make(map[int]*entities.User)}
}

func (u *memoryUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, uow repositories.UnitOfWork) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(ctx, u)
}

func (u *memoryUnitOfWork) Projects() repositories.ProjectRepository     { return nil }
func (u *memoryUnitOfWork) Notes() repositories.NoteRepository           { return nil }
func (u *memoryUnitOfWork) Attributes() repositories.AttributeRepository { return nil }
func (u *memoryUnitOfWork) Users() repositories.UserRepository           { return memoryUsers{u} }

type memoryUsers struct {
	u *memoryUnitOfWork
}

func (r memoryUsers) List(context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(r.u.users))
	for _, user := range r.u.users {
		users = append(users, user)
	}
	return users, nil
}

func (r memoryUsers) FindByID(_ context.Context, id int) (*entities.User, error) {
	if user, ok := r.u.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, entities.ErrUserNotFound
}

func (r memoryUsers) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	for _, user := range r.u.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r memoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r memoryUsers) Create(ctx context.Context, user *entities.User) error {
	if exists, _ := r.ExistsByUsername(ctx, user.Username); exists {
		return repositories.ErrDuplicateUsername
	}
	r.u.next++
	user.ID = r.u.next
	copied := *user
	r.u.users[user.ID] = &copied
	return nil
}

func (r memoryUsers) Update(_ context.Context, user *entities.User) (entities.UpdateOutcome, error) {
	if _, ok := r.u.users[user.ID]; !ok {
		return entities.UpdateNotFound, nil
	}
	copied := *user
	r.u.users[user.ID] = &copied
	return entities.UpdateSucceeded, nil
}

func (r memoryUsers) TouchLastLogin(_ context.Context, id int, at time.Time) (entities.UpdateOutcome, error) {
	user, ok := r.u.users[id]
	if !ok {
		return entities.UpdateNotFound, nil
	}
	at = at.UTC()
	user.LastLoginTimestamp = &at
	return entities.UpdateSucceeded, nil
}

func (r memoryUsers) Delete(_ context.Context, id int) error {
	if _, ok := r.u.users[id]; !ok {
		return entities.ErrUserNotFound
	}
	delete(r.u.users, id)
	return nil
}

func (r memoryUsers) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.u.users[id]
	return ok, nil
}
