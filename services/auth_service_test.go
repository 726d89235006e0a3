package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bekzhan07/swiss-system/models"
	"github.com/Bekzhan07/swiss-system/repositories"
	"github.com/golang-jwt/jwt/v4"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return repositories.ErrUserEmailConflict
	}
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	user, err := svc.Register(ctx, RegisterInput{Email: "organizer@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleOrganizer {
		t.Errorf("role = %q, want %q", user.Role, models.RoleOrganizer)
	}
	if user.PasswordHash != "" {
		t.Error("password hash must not leave the service")
	}

	loggedIn, token, err := svc.Login(ctx, LoginInput{Email: "organizer@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user ID = %d, want %d", loggedIn.ID, user.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("unexpected claims type")
	}
	if claims["role"] != string(models.RoleOrganizer) {
		t.Errorf("token role claim = %v, want %q", claims["role"], models.RoleOrganizer)
	}
}

func TestRegister_PasswordTooShort(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.c", Password: "short"})
	if !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("err = %v, want ErrPasswordTooShort", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "long enough"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "long enough"})
	if !errors.Is(err, ErrAuthEmailTaken) {
		t.Fatalf("err = %v, want ErrAuthEmailTaken", err)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), "test-secret")

	if _, _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever1"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("unknown email: err = %v, want ErrAuthInvalidCredentials", err)
	}

	if _, err := svc.Register(ctx, RegisterInput{Email: "known@example.com", Password: "right password"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "known@example.com", Password: "wrong password"}); !errors.Is(err, ErrAuthInvalidCredentials) {
		t.Fatalf("wrong password: err = %v, want ErrAuthInvalidCredentials", err)
	}
}
