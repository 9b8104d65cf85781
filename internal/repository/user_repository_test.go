package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/avezina/showbill/internal/utils"
)

func TestUserCreateAndGetByEmail(t *testing.T) {
	repo := NewUserRepo(testDB(t))

	id, err := repo.Create(context.Background(), " Booker@Example.com ", "s3cret", 4)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if id == 0 {
		t.Fatal("create did not assign an id")
	}

	u, err := repo.GetByEmail(context.Background(), "booker@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if u.Email != "booker@example.com" {
		t.Errorf("email not normalized: %q", u.Email)
	}
	if !utils.VerifyPassword(u.PasswordHash, "s3cret") {
		t.Error("stored hash does not verify the password")
	}
	if utils.VerifyPassword(u.PasswordHash, "wrong") {
		t.Error("stored hash verifies a wrong password")
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	repo := NewUserRepo(testDB(t))

	if _, err := repo.Create(context.Background(), "dup@example.com", "pw", 4); err != nil {
		t.Fatalf("create user: %v", err)
	}
	_, err := repo.Create(context.Background(), "DUP@example.com", "pw2", 4)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate create err = %v, want ErrEmailExists", err)
	}
}
