package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/serverup/serverup-be/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewUserService(newTestDB(t))

	user, err := s.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected a generated user id")
	}
	if user.Username != "alice" {
		t.Fatalf("expected username alice, got %q", user.Username)
	}

	got, err := s.Authenticate("alice", "pw123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected user id %q, got %q", user.ID, got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatal("authenticate must not return the password hash")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := NewUserService(newTestDB(t))

	if _, err := s.Register("alice", "pw123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := s.Register("alice", "other"); err != ErrDuplicateUsername {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestPasswordIsStoredHashed(t *testing.T) {
	s := NewUserService(newTestDB(t))

	if _, err := s.Register("alice", "pw123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	stored, err := s.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "pw123" {
		t.Fatalf("expected a hash distinct from the plaintext, got %q", stored.PasswordHash)
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	s := NewUserService(newTestDB(t))

	if _, err := s.Register("alice", "pw123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := s.Authenticate("alice", "nope")
	_, unknownUser := s.Authenticate("nobody", "pw123")

	if wrongPassword != ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if unknownUser != ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownUser)
	}
}

func TestGetUserByID(t *testing.T) {
	s := NewUserService(newTestDB(t))

	user, err := s.Register("alice", "pw123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := s.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("expected alice, got %q", got.Username)
	}

	if _, err := s.GetUserByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUserByUsername(t *testing.T) {
	s := NewUserService(newTestDB(t))

	if _, err := s.Register("alice", "pw123"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := s.DeleteUserByUsername("alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteUserByUsername("alice"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.GetUserByUsername("alice"); err != ErrNotFound {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}
