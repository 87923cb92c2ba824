package services

import (
	"testing"

	"parkledger/internal/testutil"
)

func TestUserService_CreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewUserService(db)

	t.Run("successful registration", func(t *testing.T) {
		user, err := service.CreateUser("Admin@Parks.gov", "password123", "Parks Admin")
		testutil.AssertNoError(t, err)

		if user.Email != "admin@parks.gov" {
			t.Errorf("expected lowercased email, got %q", user.Email)
		}
		if user.Password == "password123" {
			t.Error("expected password to be hashed")
		}
		if !user.IsActive {
			t.Error("expected new user to be active")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := service.CreateUser("dupe@parks.gov", "password123", "")
		testutil.AssertNoError(t, err)

		_, err = service.CreateUser("DUPE@parks.gov", "password456", "")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := service.CreateUser("", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUserService_GetUserByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewUserService(db)

	t.Run("found", func(t *testing.T) {
		created, err := service.CreateUser("clerk@parks.gov", "password123", "")
		testutil.AssertNoError(t, err)

		user, err := service.GetUserByEmail("CLERK@parks.gov")
		testutil.AssertNoError(t, err)
		if user.ID != created.ID {
			t.Errorf("expected user %d, got %d", created.ID, user.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := service.GetUserByEmail("nobody@parks.gov")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("inactive user is hidden", func(t *testing.T) {
		created, err := service.CreateUser("retired@parks.gov", "password123", "")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, db.Model(created).Update("is_active", false).Error)

		_, err = service.GetUserByEmail("retired@parks.gov")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestUserService_VerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewUserService(db)

	user, err := service.CreateUser("verify@parks.gov", "password123", "")
	testutil.AssertNoError(t, err)

	if !service.VerifyPassword(user, "password123") {
		t.Error("expected correct password to verify")
	}
	if service.VerifyPassword(user, "wrong-password") {
		t.Error("expected wrong password to fail")
	}
}
