package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"notetaker/internal/notes/domain/entities"
	domainservices "notetaker/internal/notes/domain/services"
	"notetaker/internal/notes/ports/repositories"
)

type mockProjectRepository struct {
	mock.Mock
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id int) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *mockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *mockProjectRepository) Update(ctx context.Context, project *entities.Project) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, project)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *mockProjectRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProjectRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) List(ctx context.Context, filter repositories.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) ListByProjectIDs(ctx context.Context, projectIDs []int) ([]*entities.Note, error) {
	args := m.Called(ctx, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id int) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) UpdateText(ctx context.Context, id int, text string) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, id, text)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNoteRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteRepository) AttributeIDs(ctx context.Context, noteID int) ([]int, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockNoteRepository) AddAttributes(ctx context.Context, noteID int, attributeIDs []int) error {
	return m.Called(ctx, noteID, attributeIDs).Error(0)
}

func (m *mockNoteRepository) RemoveAttributes(ctx context.Context, noteID int, attributeIDs []int) error {
	return m.Called(ctx, noteID, attributeIDs).Error(0)
}

func (m *mockNoteRepository) CountByProject(ctx context.Context) ([]entities.ProjectNoteCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ProjectNoteCount), args.Error(1)
}

func (m *mockNoteRepository) CountByAttribute(ctx context.Context) ([]entities.AttributeNoteCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AttributeNoteCount), args.Error(1)
}

func (m *mockNoteRepository) CountWithoutAttributes(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockAttributeRepository struct {
	mock.Mock
}

func (m *mockAttributeRepository) List(ctx context.Context) ([]*entities.Attribute, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attribute), args.Error(1)
}

func (m *mockAttributeRepository) GetByID(ctx context.Context, id int) (*entities.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attribute), args.Error(1)
}

func (m *mockAttributeRepository) FindByIDs(ctx context.Context, ids []int) ([]*entities.Attribute, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attribute), args.Error(1)
}

func (m *mockAttributeRepository) Create(ctx context.Context, attribute *entities.Attribute) error {
	return m.Called(ctx, attribute).Error(0)
}

func (m *mockAttributeRepository) Update(ctx context.Context, attribute *entities.Attribute) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, attribute)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *mockAttributeRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAttributeRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, id int, at time.Time) (entities.UpdateOutcome, error) {
	args := m.Called(ctx, id, at)
	return args.Get(0).(entities.UpdateOutcome), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) Exists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// mockUnitOfWork выдает одни и те же mock-репозитории на каждый вызов Do.
type mockUnitOfWork struct {
	projects   *mockProjectRepository
	notes      *mockNoteRepository
	attributes *mockAttributeRepository
	users      *mockUserRepository
	calls      int
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		projects:   new(mockProjectRepository),
		notes:      new(mockNoteRepository),
		attributes: new(mockAttributeRepository),
		users:      new(mockUserRepository),
	}
}

func (u *mockUnitOfWork) Projects() repositories.ProjectRepository     { return u.projects }
func (u *mockUnitOfWork) Notes() repositories.NoteRepository           { return u.notes }
func (u *mockUnitOfWork) Attributes() repositories.AttributeRepository { return u.attributes }
func (u *mockUnitOfWork) Users() repositories.UserRepository           { return u.users }

func (u *mockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, uow repositories.UnitOfWork) error) error {
	u.calls++
	return fn(ctx, u)
}

func (u *mockUnitOfWork) assertExpectations(t mock.TestingT) {
	u.projects.AssertExpectations(t)
	u.notes.AssertExpectations(t)
	u.attributes.AssertExpectations(t)
	u.users.AssertExpectations(t)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, userID int, username string) (string, *domainservices.TokenClaims, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domainservices.TokenClaims), args.Error(2)
}

func (m *mockTokenService) Validate(ctx context.Context, token string) (*domainservices.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainservices.TokenClaims), args.Error(1)
}

type mockRevocationStore struct {
	mock.Mock
}

func (m *mockRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRevocationStore) Close() error {
	return m.Called().Error(0)
}
