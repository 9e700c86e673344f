package auth

import (
	"github.com/google/uuid"
	"github.com/inkpress/inkpress/model"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials is the single error for every authentication
	// failure. Unknown email and wrong password are deliberately
	// indistinguishable so that the login endpoint cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSetupCompleted rejects registration once the system is
	// bootstrapped.
	ErrSetupCompleted = errors.New("setup already completed")

	// ErrDuplicateEmail rejects registration with an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// dummyHash is compared against when the email is unknown so that a
// login attempt takes the same time whether or not the account exists.
var dummyHash []byte

func init() {
	var err error
	dummyHash, err = bcrypt.GenerateFromPassword([]byte("timing equalizer"), bcryptCost)
	if err != nil {
		panic("failed to precompute dummy hash: " + err.Error())
	}
}

// Authenticate looks up the user by email and checks the password against
// the stored hash. Every failure returns ErrInvalidCredentials.
func Authenticate(db *gorm.DB, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "look up user by email")
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IsBootstrapped reports whether any user account exists. Backed by a row
// count on every call, never cached in memory.
func IsBootstrapped(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users")
	}
	return count > 0, nil
}

// Register creates the initial super admin account. Open registration is
// only available while no user exists; afterwards it returns
// ErrSetupCompleted and accounts are managed by a super admin.
func Register(db *gorm.DB, email, password, name string) (*model.User, error) {
	bootstrapped, err := IsBootstrapped(db)
	if err != nil {
		return nil, err
	}
	if bootstrapped {
		return nil, ErrSetupCompleted
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	if name == "" {
		name = "Super Admin"
	}

	user := &model.User{
		Id:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	err = db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Two concurrent bootstrap attempts, the unique email index
		// serializes them.
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}
