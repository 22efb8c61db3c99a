package services

import (
	"encoding/json"

	"giglink_backend/internal/models"
	"giglink_backend/internal/repositories"
	"giglink_backend/internal/services/dto"
	"giglink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest, profileImage string) (*dto.ProfileResponse, error)
	UpdateRecruiterProfile(db *gorm.DB, userID string, req *dto.UpdateRecruiterProfileRequest) (*dto.ProfileResponse, error)
	ListUsers(db *gorm.DB, page, limit int) (*dto.UserListResponse, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := newProfileResponse(user)
	return &resp, nil
}

// UpdateProfile patches the personal fields. profileImage, when non-empty,
// is the public URL of an already stored upload.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest, profileImage string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.State != "" {
		user.State = req.State
	}
	if req.ZipCode != "" {
		user.ZipCode = req.ZipCode
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Height > 0 {
		user.Height = req.Height
	}
	if req.Weight > 0 {
		user.Weight = req.Weight
	}
	if profileImage != "" {
		user.ProfileImage = profileImage
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := newProfileResponse(user)
	return &resp, nil
}

// UpdateRecruiterProfile replaces the company block in one transaction.
func (s *UserServiceImpl) UpdateRecruiterProfile(db *gorm.DB, userID string, req *dto.UpdateRecruiterProfileRequest) (*dto.ProfileResponse, error) {
	var user *models.User
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.userRepo.FindByID(tx, userID)
		if err != nil {
			return err
		}

		industries, err := json.Marshal(req.Industries)
		if err != nil {
			return err
		}
		gigTypes, err := json.Marshal(req.GigTypes)
		if err != nil {
			return err
		}

		user.CompanyName = req.CompanyName
		user.CompanyType = req.CompanyType
		user.CompanyRegistration = req.CompanyRegistration
		user.CompanyAddress = req.CompanyAddress
		user.Industries = datatypes.JSON(industries)
		user.GigTypes = datatypes.JSON(gigTypes)

		return s.userRepo.Update(tx, user)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := newProfileResponse(user)
	return &resp, nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, page, limit int) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindAll(db, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProfileResponse, len(users))
	for i := range users {
		items[i] = newProfileResponse(&users[i])
	}

	return &dto.UserListResponse{
		Users:      items,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

func newProfileResponse(user *models.User) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		ID:           user.ID,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Name:         user.Name,
		Role:         user.Role,
		Address:      user.Address,
		City:         user.City,
		State:        user.State,
		ZipCode:      user.ZipCode,
		Country:      user.Country,
		Gender:       user.Gender,
		Height:       user.Height,
		Weight:       user.Weight,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if user.Role == models.UserRoleRecruiter && user.CompanyName != "" {
		resp.Company = &dto.CompanyProfile{
			Name:         user.CompanyName,
			Type:         user.CompanyType,
			Registration: user.CompanyRegistration,
			Address:      user.CompanyAddress,
			Logo:         user.CompanyLogo,
			Industries:   decodeStringList(user.Industries),
			GigTypes:     decodeStringList(user.GigTypes),
		}
	}
	return resp
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}
