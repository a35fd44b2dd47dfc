package media

import (
	"errors"

	"gorm.io/gorm"
)

type MediaRepository interface {
	CreateScreensaverImage(img *ScreensaverImage) error
	GetScreensaverImageByID(id uint) (*ScreensaverImage, error)
	GetScreensaverImagesBySchool(schoolID uint, activeOnly bool) ([]ScreensaverImage, error)
	UpdateScreensaverImage(img *ScreensaverImage) error
	DeleteScreensaverImage(id uint) error
	ResolveSchoolIDBySlug(slug string) (uint, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) CreateScreensaverImage(img *ScreensaverImage) error {
	return r.db.Create(img).Error
}

func (r *mediaRepository) GetScreensaverImageByID(id uint) (*ScreensaverImage, error) {
	var img ScreensaverImage
	err := r.db.First(&img, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *mediaRepository) GetScreensaverImagesBySchool(schoolID uint, activeOnly bool) ([]ScreensaverImage, error) {
	var images []ScreensaverImage
	query := r.db.Where("school_id = ?", schoolID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("sort_order asc, id asc").Find(&images).Error
	return images, err
}

func (r *mediaRepository) UpdateScreensaverImage(img *ScreensaverImage) error {
	return r.db.Save(img).Error
}

func (r *mediaRepository) DeleteScreensaverImage(id uint) error {
	return r.db.Unscoped().Delete(&ScreensaverImage{}, id).Error
}

// ResolveSchoolIDBySlug finds the active school behind a public slug. Queried
// by table name so this package does not depend on the school package.
func (r *mediaRepository) ResolveSchoolIDBySlug(slug string) (uint, error) {
	var row struct{ ID uint }
	err := r.db.Table("schools").
		Select("id").
		Where("slug = ? AND active = ? AND deleted_at IS NULL", slug, true).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.ID, nil
}
