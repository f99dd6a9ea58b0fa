package services

import (
	"errors"
	"fmt"

	"quiz-platform/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAvatarURL = "https://cdn.quiz-platform.dev/avatars/default.png"

type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type EditProfileRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
	Password  string `json:"password" validate:"omitempty,min=6"`
}

type UserService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, validate: validator.New()}
}

// Register creates a new PLAYER account with the starting score and level.
func (s *UserService) Register(req RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, models.ErrPasswordMismatch
	}

	var existing models.User
	err := s.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrUsernameTaken, req.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Password:  string(hash),
		Email:     req.Email,
		AvatarURL: defaultAvatarURL,
		Role:      models.RolePlayer,
		Score:     0,
		Level:     1,
		Active:    true,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, username)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	err := s.DB.Order("username").Find(&users).Error
	return users, err
}

func (s *UserService) DeleteUser(username string) error {
	user, err := s.GetByUsername(username)
	if err != nil {
		return err
	}
	return s.DB.Delete(user).Error
}

// UpdateProfile edits the mutable profile fields. Score, level and role are
// off-limits here; they belong to the progression service.
func (s *UserService) UpdateProfile(userID string, req EditProfileRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidationFailed, err)
	}

	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := s.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AverageSuccessPercent is the profile-page success metric: cumulative score
// over twice the number of quizzes the user has taken.
func (s *UserService) AverageSuccessPercent(user *models.User) (int, error) {
	var quizCount int64
	if err := s.DB.Model(&models.Quiz{}).Where("user_id = ?", user.ID).Count(&quizCount).Error; err != nil {
		return 0, err
	}
	if quizCount == 0 {
		return 0, nil
	}
	return user.Score / (int(quizCount) * 2), nil
}
