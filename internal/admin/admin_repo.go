package admin

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type AdminRepository interface {
	CreateAdmin(a *Admin) error
	GetAdminByID(id string) (*Admin, error)
	GetAdminByEmail(email string) (*Admin, error)
	GetAdminsBySchool(schoolID uint) ([]Admin, error)
	GetSuperAdmins() ([]Admin, error)
	UpdateAdmin(a *Admin) error
	SetActive(id string, active bool) error

	CreateInvite(inv *AdminInvite) error
	GetInviteByID(id uint) (*AdminInvite, error)
	GetPendingInviteByEmail(email string) (*AdminInvite, error)
	GetInvitesBySchool(schoolID uint) ([]AdminInvite, error)
	MarkInviteUsed(id uint) error
	DeleteInvite(id uint) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CreateAdmin(a *Admin) error {
	return r.db.Create(a).Error
}

func (r *adminRepository) GetAdminByID(id string) (*Admin, error) {
	var a Admin
	err := r.db.First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetAdminByEmail(email string) (*Admin, error) {
	var a Admin
	err := r.db.First(&a, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *adminRepository) GetAdminsBySchool(schoolID uint) ([]Admin, error) {
	var admins []Admin
	err := r.db.Where("school_id = ?", schoolID).
		Order("created_at asc").
		Find(&admins).Error
	return admins, err
}

func (r *adminRepository) GetSuperAdmins() ([]Admin, error) {
	var admins []Admin
	err := r.db.Where("school_id IS NULL").
		Order("created_at asc").
		Find(&admins).Error
	return admins, err
}

func (r *adminRepository) UpdateAdmin(a *Admin) error {
	return r.db.Save(a).Error
}

func (r *adminRepository) SetActive(id string, active bool) error {
	return r.db.Model(&Admin{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *adminRepository) CreateInvite(inv *AdminInvite) error {
	return r.db.Create(inv).Error
}

func (r *adminRepository) GetInviteByID(id uint) (*AdminInvite, error) {
	var inv AdminInvite
	err := r.db.First(&inv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *adminRepository) GetPendingInviteByEmail(email string) (*AdminInvite, error) {
	var inv AdminInvite
	err := r.db.Where("email = ? AND used_at IS NULL AND expires_at > ?", email, time.Now()).
		Order("created_at desc").
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *adminRepository) GetInvitesBySchool(schoolID uint) ([]AdminInvite, error) {
	var invites []AdminInvite
	err := r.db.Where("school_id = ? AND used_at IS NULL", schoolID).
		Order("created_at desc").
		Find(&invites).Error
	return invites, err
}

func (r *adminRepository) MarkInviteUsed(id uint) error {
	now := time.Now()
	return r.db.Model(&AdminInvite{}).
		Where("id = ?", id).
		Update("used_at", &now).Error
}

func (r *adminRepository) DeleteInvite(id uint) error {
	return r.db.Delete(&AdminInvite{}, id).Error
}
