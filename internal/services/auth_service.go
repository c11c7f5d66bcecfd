package services

import (
	"errors"

	"craftroots/internal/domain"
	"craftroots/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Accounts *repos.AccountRepo
}

// Register creates an account with the "user" role. A taken email surfaces
// as repos.ErrDuplicate.
func (s *AuthService) Register(email, name, password string, addr domain.Address) (*domain.Account, error) {
	a := &domain.Account{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    name,
		Role:    domain.RoleUser,
		Address: addr,
	}
	if err := domain.ValidateAccount(a); err != nil {
		return nil, err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	a.Hash = string(h)
	if err := s.Accounts.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.Account, error) {
	a, err := s.Accounts.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Accounts.BindSession(sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Accounts.UnbindSession(sid)
}

func (s *AuthService) CurrentAccount(sid string) (*domain.Account, error) {
	return s.Accounts.SessionAccount(sid)
}
