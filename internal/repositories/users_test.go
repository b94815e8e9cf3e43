package repositories

import (
	"testing"

	"github.com/devpatel-io/inklens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createVerifiedUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, err := CreateUser(username, email, password)
	require.NoError(t, err)
	require.NoError(t, VerifyUser(email, user.VerifyCode))
	user.Verified = true
	return user
}

func TestCreateUser_HashesPassword(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", user.Password)
	assert.False(t, user.Verified)
	assert.Len(t, user.VerifyCode, 4)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	_, err = CreateUser("alice", "other@x.com", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	var count int64
	require.NoError(t, DB.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "no row should be added on duplicate signup")
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	_, err = CreateUser("bob", "alice@x.com", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestAuthenticate_Scenario(t *testing.T) {
	setupTestDB(t)

	created := createVerifiedUser(t, "alice", "alice@x.com", "pw1")

	user, err := Authenticate("alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "alice", user.Username)

	_, err = Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_ByEmail(t *testing.T) {
	setupTestDB(t)

	createVerifiedUser(t, "alice", "alice@x.com", "pw1")

	user, err := Authenticate("alice@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthenticate_UnverifiedFailsLikeBadPassword(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	_, err = Authenticate("alice", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	setupTestDB(t)

	_, err := Authenticate("nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyUser_WrongCode(t *testing.T) {
	setupTestDB(t)

	_, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyUser("alice@x.com", "0000x"), ErrVerificationFailed)
}

func TestVerifyUser_CodeIsOneTime(t *testing.T) {
	setupTestDB(t)

	user, err := CreateUser("alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, VerifyUser("alice@x.com", user.VerifyCode))
	assert.ErrorIs(t, VerifyUser("alice@x.com", user.VerifyCode), ErrVerificationFailed)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	setupTestDB(t)

	user := createVerifiedUser(t, "alice", "alice@x.com", "pw1")

	require.NoError(t, UpdateProfile(user.ID, ProfileUpdate{Email: "new@x.com"}))

	updated, err := GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username, "username must be unchanged")
	assert.Equal(t, "new@x.com", updated.Email)

	// Old password still works: only provided fields change.
	_, err = Authenticate("alice", "pw1")
	assert.NoError(t, err)
}

func TestUpdateProfile_DuplicateIdentity(t *testing.T) {
	setupTestDB(t)

	alice := createVerifiedUser(t, "alice", "alice@x.com", "pw1")
	createVerifiedUser(t, "bob", "bob@x.com", "pw2")

	err := UpdateProfile(alice.ID, ProfileUpdate{Email: "bob@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	err = UpdateProfile(alice.ID, ProfileUpdate{Username: "bob"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	// The caller's row is unchanged after the rejected updates.
	unchanged, err := GetUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", unchanged.Username)
	assert.Equal(t, "alice@x.com", unchanged.Email)
}

func TestUpdateProfile_RehashesPassword(t *testing.T) {
	setupTestDB(t)

	user := createVerifiedUser(t, "alice", "alice@x.com", "pw1")

	require.NoError(t, UpdateProfile(user.ID, ProfileUpdate{Password: "pw2"}))

	_, err := Authenticate("alice", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	updated, err := Authenticate("alice", "pw2")
	require.NoError(t, err)
	assert.NotEqual(t, "pw2", updated.Password, "stored credential must be hashed")
}

func TestUpdateProfile_NoFieldsIsNoop(t *testing.T) {
	setupTestDB(t)

	user := createVerifiedUser(t, "alice", "alice@x.com", "pw1")
	assert.NoError(t, UpdateProfile(user.ID, ProfileUpdate{}))
}
