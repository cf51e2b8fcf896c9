package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// fakeUserRepo is an in-memory UserRepository for unit tests.
type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

// fakePasswordService hashes by prefixing, good enough for unit tests.
type fakePasswordService struct{}

func (fakePasswordService) Hash(password string) (string, error) { return "hash:" + password, nil }

func (fakePasswordService) Verify(hash, password string) bool { return hash == "hash:"+password }

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, error) {
	return "token-" + userID.String(), nil
}

func (fakeTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return nil, nil
}

func TestRegisterUser(t *testing.T) {
	t.Run("registers and returns a token", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

		out, err := uc.Execute(context.Background(), RegisterUserInput{
			Email:    "Ada@Example.com",
			Name:     "Ada",
			Password: "correcthorse",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "ada@example.com" {
			t.Errorf("email must be normalized to lower case, got %q", out.Email)
		}
		if out.AccessToken == "" {
			t.Error("expected an access token")
		}
		if u := repo.byEmail["ada@example.com"]; u == nil || u.PasswordHash == "correcthorse" {
			t.Error("password must be stored hashed")
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		uc := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})

		input := RegisterUserInput{Email: "ada@example.com", Name: "Ada", Password: "correcthorse"}
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if _, err := uc.Execute(context.Background(), input); err == nil {
			t.Fatal("expected duplicate email error")
		}
	})

	t.Run("rejects short password", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), fakePasswordService{}, fakeTokenService{})

		if _, err := uc.Execute(context.Background(), RegisterUserInput{
			Email: "ada@example.com", Name: "Ada", Password: "short",
		}); err == nil {
			t.Fatal("expected password length error")
		}
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		uc := NewRegisterUserUseCase(newFakeUserRepo(), fakePasswordService{}, fakeTokenService{})

		if _, err := uc.Execute(context.Background(), RegisterUserInput{
			Email: "not-an-email", Name: "Ada", Password: "correcthorse",
		}); err == nil {
			t.Fatal("expected email validation error")
		}
	})
}

func TestLoginUser(t *testing.T) {
	seed := func(t *testing.T) (*LoginUserUseCase, *fakeUserRepo) {
		t.Helper()
		repo := newFakeUserRepo()
		register := NewRegisterUserUseCase(repo, fakePasswordService{}, fakeTokenService{})
		if _, err := register.Execute(context.Background(), RegisterUserInput{
			Email: "ada@example.com", Name: "Ada", Password: "correcthorse",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return NewLoginUserUseCase(repo, fakePasswordService{}, fakeTokenService{}), repo
	}

	t.Run("valid credentials", func(t *testing.T) {
		uc, _ := seed(t)

		out, err := uc.Execute(context.Background(), LoginUserInput{Email: "ada@example.com", Password: "correcthorse"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.AccessToken == "" {
			t.Error("expected an access token")
		}
	})

	t.Run("wrong password and unknown email yield the same error", func(t *testing.T) {
		uc, _ := seed(t)

		_, errWrongPassword := uc.Execute(context.Background(), LoginUserInput{Email: "ada@example.com", Password: "nope-nope"})
		_, errUnknownEmail := uc.Execute(context.Background(), LoginUserInput{Email: "ghost@example.com", Password: "correcthorse"})

		if errWrongPassword == nil || errUnknownEmail == nil {
			t.Fatal("expected errors for bad credentials")
		}
		if errWrongPassword.Error() != errUnknownEmail.Error() {
			t.Error("login failures must not reveal whether the email exists")
		}
	})
}
