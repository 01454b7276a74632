package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Domenick1991/travelagency/internal/domain"
	"github.com/Domenick1991/travelagency/internal/logger"
	"github.com/Domenick1991/travelagency/internal/observability/metrics"
	"github.com/Domenick1991/travelagency/internal/repository"
)

type StaffUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Staff, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type TokenIssuer interface {
	Issue(p domain.Principal) (string, error)
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
	Staff *domain.Staff
}

var errInvalidCredentials = domain.Unauthorized("Invalid credentials")

type StaffService struct {
	repo   repository.StaffRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewStaffService(repo repository.StaffRepository, hasher PasswordHasher, tokens TokenIssuer) *StaffService {
	return &StaffService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register rejects a taken email before paying for the hash. The unique
// constraint still decides concurrent registrations.
func (s *StaffService) Register(ctx context.Context, input RegisterInput) (*domain.Staff, error) {
	_, err := s.repo.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultConflict)
		return nil, domain.Conflict("User already exists")
	case !errors.Is(err, domain.ErrNotFound):
		metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultError)
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultFailure)
		} else {
			metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultError)
		}
		return nil, err
	}

	member := &domain.Staff{Email: input.Email, PasswordHash: hash, FullName: input.FullName}
	if err := s.repo.Create(ctx, member); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultConflict)
		} else {
			metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultError)
		}
		return nil, err
	}

	metrics.RecordAuthAttempt(metrics.OpRegister, metrics.ResultSuccess)
	logger.FromContext(ctx).InfoContext(ctx, "staff registered", slog.Int64("staff_id", member.ID))
	return member, nil
}

// Login answers an unknown email and a wrong password with the same error.
func (s *StaffService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	member, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordAuthAttempt(metrics.OpLogin, metrics.ResultFailure)
			return nil, errInvalidCredentials
		}
		metrics.RecordAuthAttempt(metrics.OpLogin, metrics.ResultError)
		return nil, err
	}

	if !s.hasher.Verify(input.Password, member.PasswordHash) {
		metrics.RecordAuthAttempt(metrics.OpLogin, metrics.ResultFailure)
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Principal{ID: member.ID, Email: member.Email})
	if err != nil {
		metrics.RecordAuthAttempt(metrics.OpLogin, metrics.ResultError)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.RecordAuthAttempt(metrics.OpLogin, metrics.ResultSuccess)
	return &LoginResult{Token: token, Staff: member}, nil
}

var _ StaffUseCase = (*StaffService)(nil)
