package inductee

import (
	"errors"

	"gorm.io/gorm"
)

// InducteeRepository defines the interface for hall-of-fame data operations.
type InducteeRepository interface {
	CreateInductee(i *Inductee) error
	GetInducteeByID(id uint) (*Inductee, error)
	GetInducteesBySchool(schoolID uint, category string) ([]Inductee, error)
	UpdateInductee(i *Inductee) error
	DeleteInductee(id uint) error
	ResolveSchoolIDBySlug(slug string) (uint, error)
}

type inducteeRepository struct {
	db *gorm.DB
}

// NewInducteeRepository creates a new instance of InducteeRepository.
func NewInducteeRepository(db *gorm.DB) InducteeRepository {
	return &inducteeRepository{db: db}
}

func (r *inducteeRepository) CreateInductee(i *Inductee) error {
	return r.db.Create(i).Error
}

func (r *inducteeRepository) GetInducteeByID(id uint) (*Inductee, error) {
	var i Inductee
	if err := r.db.First(&i, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *inducteeRepository) GetInducteesBySchool(schoolID uint, category string) ([]Inductee, error) {
	var inductees []Inductee
	query := r.db.Where("school_id = ?", schoolID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("induction_year desc, name asc").Find(&inductees).Error
	return inductees, err
}

func (r *inducteeRepository) UpdateInductee(i *Inductee) error {
	return r.db.Save(i).Error
}

func (r *inducteeRepository) DeleteInductee(id uint) error {
	return r.db.Unscoped().Delete(&Inductee{}, id).Error
}

// ResolveSchoolIDBySlug maps a tenant subdomain slug to its school id.
// Returns 0 when no active school matches.
func (r *inducteeRepository) ResolveSchoolIDBySlug(slug string) (uint, error) {
	var id uint
	err := r.db.Table("schools").
		Select("id").
		Where("slug = ? AND active = ? AND deleted_at IS NULL", slug, true).
		Scan(&id).Error
	return id, err
}
