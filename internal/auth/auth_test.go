package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/plop/internal/storage"
	"github.com/julianstephens/plop/internal/storage/sqlite"
)

func setupAuth(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "plop.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store), store
}

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		method  Method
		input   string
		want    string
		wantErr bool
	}{
		{name: "email", method: MethodEmail, input: " me@plop.io ", want: "me@plop.io"},
		{name: "email no tld", method: MethodEmail, input: "me@plop", wantErr: true},
		{name: "email with space", method: MethodEmail, input: "m e@plop.io", wantErr: true},
		{name: "phone", method: MethodPhone, input: "13812345678", want: "13812345678"},
		{name: "phone bad prefix", method: MethodPhone, input: "12812345678", wantErr: true},
		{name: "phone too short", method: MethodPhone, input: "1381234567", wantErr: true},
		{name: "blank", method: MethodPhone, input: "   ", wantErr: true},
		{name: "unknown method", method: Method("fax"), input: "123", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateIdentifier(tt.method, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateIdentifier() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidIdentifier) {
				t.Errorf("error = %v, want ErrInvalidIdentifier", err)
			}
			if got != tt.want {
				t.Errorf("ValidateIdentifier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("12345"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("ValidatePassword(5 chars) = %v", err)
	}
	if err := ValidatePassword(""); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("ValidatePassword(empty) = %v", err)
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Errorf("ValidatePassword(6 chars) = %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, store := setupAuth(t)

	if _, err := svc.Current(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("Current() before login error = %v", err)
	}

	u, err := svc.Login(ctx, MethodPhone, "13812345678", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !strings.HasPrefix(u.ID, "user_") || u.Username != "MobileUser" || u.Phone != "13812345678" {
		t.Errorf("Login() user = %+v", u)
	}
	if !strings.HasPrefix(u.Avatar, "https://picsum.photos/") {
		t.Errorf("avatar = %q", u.Avatar)
	}

	current, err := svc.Current(ctx)
	if err != nil || current.ID != u.ID {
		t.Errorf("Current() = %+v, %v", current, err)
	}

	again, err := svc.Login(ctx, MethodPhone, "13812345678", "another1")
	if err != nil || again.ID != u.ID {
		t.Errorf("second Login() = %s, %v; want same user", again.ID, err)
	}

	email, err := svc.Login(ctx, MethodEmail, "Me@Plop.io", "secret1")
	if err != nil {
		t.Fatalf("Login(email) error = %v", err)
	}
	if email.Username != "EmailUser" || email.ID == u.ID {
		t.Errorf("Login(email) = %+v", email)
	}
	users, _ := store.GetAllUsers(ctx)
	if len(users) != 2 {
		t.Errorf("users = %d, want 2", len(users))
	}
}

func TestLogin_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, store := setupAuth(t)

	if _, err := svc.Login(ctx, MethodEmail, "nope", "secret1"); !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("Login(bad email) error = %v", err)
	}
	if _, err := svc.Login(ctx, MethodEmail, "me@plop.io", "123"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Login(short password) error = %v", err)
	}
	users, _ := store.GetAllUsers(ctx)
	if len(users) != 0 {
		t.Errorf("rejected logins created %d users", len(users))
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupAuth(t)

	if err := svc.Logout(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Logout() while logged out error = %v", err)
	}
	if _, err := svc.Login(ctx, MethodEmail, "me@plop.io", "secret1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := svc.Current(ctx); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Current() after logout error = %v", err)
	}
}
