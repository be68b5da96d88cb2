package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cryptotrack/portfolio-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository shared by the service
// tests in this package.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	found := make(map[string]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found[id] = cloneUser(u)
		}
	}
	return found, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	// newest first, matching the mongo repository's sort order
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if users[j].CreatedAt.After(users[i].CreatedAt) {
				users[i], users[j] = users[j], users[i]
			}
		}
	}
	return users, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id, role string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "secret", zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role forced to user, got %s", user.Role)
	}
}

func TestAuthService_Register_HashIsSalted(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	a, err := svc.Register(context.Background(), "alice", "a@x.com", "samepass")
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	b, err := svc.Register(context.Background(), "bob", "b@x.com", "samepass")
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatalf("expected distinct hashes for identical passwords")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "a@x.com", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "a@x.com", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing password, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "alice", "a@x.com", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice2", "a@x.com", "pass2"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), "carol", "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@x.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Fatalf("expected sub %s, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Fatalf("expected role %s, got %v", domain.RoleUser, claims["role"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("expected numeric exp claim, got %v", claims["exp"])
	}
	expected := time.Now().Add(TokenTTL).Unix()
	if int64(exp) < expected-60 || int64(exp) > expected+60 {
		t.Fatalf("expected 7-day expiry, got exp %d (now+ttl %d)", int64(exp), expected)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "dave", "dave@x.com", "goodpass")
	if _, _, err := svc.Login(context.Background(), "dave@x.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "dave", "dave@x.com", "goodpass")

	_, _, unknownErr := svc.Login(context.Background(), "ghost@x.com", "goodpass")
	_, _, wrongErr := svc.Login(context.Background(), "dave@x.com", "badpass")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("unknown-email and wrong-password errors must be identical: %q vs %q", unknownErr, wrongErr)
	}
}
