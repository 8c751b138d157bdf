package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"qrt-tracker/internal/models"
	"qrt-tracker/internal/repository"
	"qrt-tracker/internal/utils"
)

// Profile is a user as returned to clients, with a token when one was issued.
type Profile struct {
	models.User
	Token string `json:"token,omitempty"`
}

type RegisterInput struct {
	EmployeeID   int    `json:"employeeID"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	Department   string `json:"department"`
	Password     string `json:"password"`
	IsAdmin      bool   `json:"isAdmin"`
}

// UserPatch is a partial update: nil fields keep their current value.
type UserPatch struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	EmailAddress *string `json:"emailAddress"`
	Department   *string `json:"department"`
	Password     *string `json:"password"`
	IsAdmin      *bool   `json:"isAdmin"`
}

type UserService struct {
	users  repository.UserRepository
	tokens *utils.JWTSigner
}

func NewUserService(users repository.UserRepository, tokens *utils.JWTSigner) *UserService {
	return &UserService{users: users, tokens: tokens}
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Profile, error) {
	u, hash, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.withToken(u)
}

// Register creates an account. The admin flag is only honored when actor is
// an admin; open registration always yields a regular user.
func (s *UserService) Register(ctx context.Context, in RegisterInput, actor *models.User) (*Profile, error) {
	u := &models.User{
		EmployeeID:   in.EmployeeID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		EmailAddress: strings.TrimSpace(in.EmailAddress),
		Department:   strings.TrimSpace(in.Department),
		IsAdmin:      in.IsAdmin && actor != nil && actor.IsAdmin,
	}
	if u.EmployeeID <= 0 {
		return nil, fail(ErrInvalid, "employeeID must be a positive integer")
	}
	if u.FirstName == "" || u.LastName == "" || u.EmailAddress == "" || u.Department == "" || in.Password == "" {
		return nil, fail(ErrInvalid, "Invalid user data")
	}

	if _, err := s.users.GetByID(ctx, u.EmployeeID); err == nil {
		return nil, fail(ErrConflict, "User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u, hash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fail(ErrConflict, "User already exists")
		}
		return nil, err
	}
	return s.withToken(u)
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// UpdateProfile is the self-service update; the admin flag is ignored.
func (s *UserService) UpdateProfile(ctx context.Context, id int, p UserPatch) (*Profile, error) {
	p.IsAdmin = nil
	return s.update(ctx, id, p)
}

// Update is the admin variant and may change the admin flag.
func (s *UserService) Update(ctx context.Context, id int, p UserPatch) (*Profile, error) {
	return s.update(ctx, id, p)
}

func (s *UserService) update(ctx context.Context, id int, p UserPatch) (*Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		in  *string
		dst *string
		key string
	}{
		{p.FirstName, &u.FirstName, "firstName"},
		{p.LastName, &u.LastName, "lastName"},
		{p.EmailAddress, &u.EmailAddress, "emailAddress"},
		{p.Department, &u.Department, "department"},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, fail(ErrInvalid, "%s must not be empty", f.key)
		}
		*f.dst = v
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}

	var hash string
	if p.Password != nil {
		if *p.Password == "" {
			return nil, fail(ErrInvalid, "password must not be empty")
		}
		if hash, err = utils.HashPassword(*p.Password); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, u, hash); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fail(ErrNotFound, "User not found")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fail(ErrConflict, "Email address already in use")
		}
		return nil, err
	}
	return s.withToken(u)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fail(ErrNotFound, "User not found")
	}
	return err
}

func (s *UserService) withToken(u *models.User) (*Profile, error) {
	tok, err := s.tokens.Issue(strconv.Itoa(u.EmployeeID))
	if err != nil {
		return nil, err
	}
	return &Profile{User: *u, Token: tok}, nil
}
