package school

import (
	"errors"

	"gorm.io/gorm"
)

// SchoolRepository defines the interface for tenant data operations.
type SchoolRepository interface {
	CreateSchool(school *School) error
	GetSchoolByID(id uint) (*School, error)
	GetSchoolBySlug(slug string) (*School, error)
	GetAllSchools(page, limit int, includeInactive bool) ([]School, int64, error)
	UpdateSchool(school *School) error
	SlugExists(slug string) (bool, error)
	SetActive(id uint, active bool) error
	PurgeSchool(id uint) error
}

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository creates a new instance of SchoolRepository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) CreateSchool(school *School) error {
	return r.db.Create(school).Error
}

func (r *schoolRepository) GetSchoolByID(id uint) (*School, error) {
	var s School
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *schoolRepository) GetSchoolBySlug(slug string) (*School, error) {
	var s School
	if err := r.db.Where("slug = ?", slug).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *schoolRepository) GetAllSchools(page, limit int, includeInactive bool) ([]School, int64, error) {
	var schools []School
	var total int64

	query := r.db.Model(&School{})
	if !includeInactive {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Order("name asc").Offset(offset).Limit(limit).Find(&schools).Error; err != nil {
		return nil, 0, err
	}
	return schools, total, nil
}

func (r *schoolRepository) UpdateSchool(school *School) error {
	return r.db.Save(school).Error
}

func (r *schoolRepository) SlugExists(slug string) (bool, error) {
	var count int64
	if err := r.db.Model(&School{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *schoolRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&School{}).Where("id = ?", id).Update("active", active).Error
}

// PurgeSchool hard-deletes a tenant and every row it owns inside a single
// transaction. Ordering matters only for readability; the transaction is what
// prevents a half-deleted tenant.
func (r *schoolRepository) PurgeSchool(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM team_seasons WHERE program_id IN (SELECT id FROM teams WHERE school_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		for _, table := range []string{"teams", "events", "hall_of_fame", "screensaver_images", "admin_invites", "admins"} {
			if err := tx.Exec(`DELETE FROM `+table+` WHERE school_id = ?`, id).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&School{}, id).Error
	})
}
