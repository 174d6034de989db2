package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/communityhub/internal/models"
)

// VerificationUpdate is one queued change produced by the verification workflow.
type VerificationUpdate struct {
	Username string
	Verified bool
	Token    *string
}

// UserStore abstracts the user collection so the workflows can be exercised
// against an in-memory fake. Lookups return (nil, nil) when no record matches;
// only transport failures surface as errors.
type UserStore interface {
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	FindByVerificationToken(token string) (*models.User, error)
	ListUnverified() ([]models.User, error)
	Create(user *models.User) error
	UpdateVerification(username string, verified bool, token *string) error
	BatchUpdateVerification(updates []VerificationUpdate) error
}

// Users is the Postgres-backed UserStore.
type Users struct {
	db *gorm.DB
}

// NewUsers constructs a Users store over the given connection.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// GetByUsername looks up a user by its primary key.
func (s *Users) GetByUsername(username string) (*models.User, error) {
	return s.firstWhere("username = ?", username)
}

// GetByEmail looks up a user by email address.
func (s *Users) GetByEmail(email string) (*models.User, error) {
	return s.firstWhere("email = ?", email)
}

// GetByPhone looks up a user by phone number.
func (s *Users) GetByPhone(phone string) (*models.User, error) {
	return s.firstWhere("phone_number = ?", phone)
}

// FindByVerificationToken returns the user currently holding the given OTP.
func (s *Users) FindByVerificationToken(token string) (*models.User, error) {
	return s.firstWhere("verification_token = ?", token)
}

// ListUnverified returns all users still awaiting verification.
func (s *Users) ListUnverified() ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("verified = ?", false).Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a user record. The write is a blind overwrite keyed by
// username; callers gate uniqueness before calling.
func (s *Users) Create(user *models.User) error {
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(user).Error
}

// UpdateVerification sets the verified flag and verification token together.
func (s *Users) UpdateVerification(username string, verified bool, token *string) error {
	return s.db.Model(&models.User{}).Where("username = ?", username).
		Updates(map[string]interface{}{
			"verified":           verified,
			"verification_token": token,
		}).Error
}

// BatchUpdateVerification applies a set of verification updates in a single
// transaction, all or nothing.
func (s *Users) BatchUpdateVerification(updates []VerificationUpdate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			err := tx.Model(&models.User{}).Where("username = ?", update.Username).
				Updates(map[string]interface{}{
					"verified":           update.Verified,
					"verification_token": update.Token,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Users) firstWhere(query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := s.db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
