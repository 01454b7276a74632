package staff

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Domenick1991/travelagency/internal/auth"
	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func newService(t *testing.T, repo *MockStaffRepository) (*StaffService, *auth.PasswordHasher, *auth.TokenManager) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(4)
	require.NoError(t, err)
	tokens, err := auth.NewTokenManager("test-secret", "", 0)
	require.NoError(t, err)
	return NewStaffService(repo, hasher, tokens), hasher, tokens
}

func TestStaffService_Register_Success(t *testing.T) {
	repo := &MockStaffRepository{}
	service, hasher, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(nil, domain.NotFound("Staff not found")).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Staff) bool {
		return s.Email == "agent@example.com" && s.FullName == "Ann Agent" && s.PasswordHash != "secret123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Staff).ID = 7
	}).Return(nil).Once()

	member, err := service.Register(ctx, RegisterInput{Email: "agent@example.com", Password: "secret123", FullName: "Ann Agent"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), member.ID)
	assert.True(t, hasher.Verify("secret123", member.PasswordHash))
	repo.AssertExpectations(t)
}

func TestStaffService_Register_PasswordTooLong(t *testing.T) {
	repo := &MockStaffRepository{}
	service, _, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(nil, domain.NotFound("Staff not found")).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "agent@example.com", Password: strings.Repeat("x", 73), FullName: "Ann"})

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrValidation, derr.Kind)
	assert.EqualError(t, err, "Password must be at most 72 bytes")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStaffService_Register_Duplicate(t *testing.T) {
	repo := &MockStaffRepository{}
	service, _, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(&domain.Staff{ID: 1, Email: "agent@example.com"}, nil).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "agent@example.com", Password: "x", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "User already exists")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStaffService_Register_LostRace(t *testing.T) {
	repo := &MockStaffRepository{}
	service, _, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(nil, domain.NotFound("Staff not found")).Once()
	repo.On("Create", ctx, mock.Anything).Return(domain.Conflict("User already exists")).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "agent@example.com", Password: "x", FullName: "A"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertExpectations(t)
}

func TestStaffService_Register_LookupFails(t *testing.T) {
	repo := &MockStaffRepository{}
	service, _, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(nil, errors.New("db down")).Once()

	_, err := service.Register(ctx, RegisterInput{Email: "agent@example.com", Password: "x", FullName: "A"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStaffService_Login_Success(t *testing.T) {
	repo := &MockStaffRepository{}
	service, hasher, tokens := newService(t, repo)
	ctx := context.Background()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	stored := &domain.Staff{ID: 7, Email: "agent@example.com", PasswordHash: hash, FullName: "Ann Agent"}
	repo.On("GetByEmail", ctx, "agent@example.com").Return(stored, nil).Once()

	result, err := service.Login(ctx, LoginInput{Email: "agent@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, stored, result.Staff)

	principal, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.Principal{ID: 7, Email: "agent@example.com"}, principal)
}

func TestStaffService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := &MockStaffRepository{}
	service, hasher, _ := newService(t, repo)
	ctx := context.Background()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	repo.On("GetByEmail", ctx, "agent@example.com").Return(&domain.Staff{ID: 7, Email: "agent@example.com", PasswordHash: hash}, nil).Once()
	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.NotFound("Staff not found")).Once()

	_, wrongPassword := service.Login(ctx, LoginInput{Email: "agent@example.com", Password: "wrong"})
	_, unknownEmail := service.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "secret123"})

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "Invalid credentials", unknownEmail.Error())
}

func TestStaffService_Login_StorageFailure(t *testing.T) {
	repo := &MockStaffRepository{}
	service, _, _ := newService(t, repo)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "agent@example.com").Return(nil, errors.New("db down")).Once()

	_, err := service.Login(ctx, LoginInput{Email: "agent@example.com", Password: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}
