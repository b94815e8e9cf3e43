package repositories

import (
	"errors"

	"github.com/devpatel-io/inklens/internal/models"
	"github.com/devpatel-io/inklens/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser registers a new account with a bcrypt-hashed password and an
// email verification code. The account stays unverified until VerifyUser.
func CreateUser(username, email, password string) (*models.User, error) {
	var existing models.User
	if err := DB.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return nil, ErrDuplicateIdentity
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := utils.GenerateNumericCode(4)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:   username,
		Email:      email,
		Password:   string(hashed),
		Verified:   false,
		VerifyCode: code,
	}
	if err := DB.Create(&user).Error; err != nil {
		// Backstop for the race between the pre-check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &user, nil
}

// VerifyUser flips the one-time unverified -> verified transition when the
// code matches. The code is cleared so it cannot be replayed.
func VerifyUser(email, code string) error {
	var user models.User
	err := DB.Where("email = ? AND verified = ?", email, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrVerificationFailed
	}
	if err != nil {
		return err
	}
	if code == "" || user.VerifyCode != code {
		return ErrVerificationFailed
	}
	return DB.Model(&user).Updates(map[string]interface{}{
		"verified":    true,
		"verify_code": "",
	}).Error
}

// Authenticate looks a user up by username or email and compares the
// password hash. Unverified accounts fail the same way as bad passwords.
func Authenticate(identifier, password string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the optional fields of an update_profile call.
// Empty strings mean "leave unchanged".
type ProfileUpdate struct {
	Username string
	Email    string
	Password string
}

// UpdateProfile applies a partial update. A new password is re-hashed
// before it is stored.
func UpdateProfile(userID uuid.UUID, upd ProfileUpdate) error {
	fields := map[string]interface{}{}
	if upd.Username != "" {
		fields["username"] = upd.Username
	}
	if upd.Email != "" {
		fields["email"] = upd.Email
	}
	if upd.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fields["password"] = string(hashed)
	}
	if len(fields) == 0 {
		return nil
	}
	err := DB.Model(&models.User{}).Where("id = ?", userID).Updates(fields).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateIdentity
	}
	return err
}
