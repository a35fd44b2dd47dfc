package event

import (
	"errors"

	"gorm.io/gorm"
)

// EventRepository defines the interface for calendar data operations.
type EventRepository interface {
	CreateEvent(e *Event) error
	GetEventByID(id uint) (*Event, error)
	GetEventsBySchool(schoolID uint, category string, page, limit int) ([]Event, int64, error)
	UpdateEvent(e *Event) error
	DeleteEvent(id uint) error
	ResolveSchoolIDBySlug(slug string) (uint, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of EventRepository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) CreateEvent(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) GetEventByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) GetEventsBySchool(schoolID uint, category string, page, limit int) ([]Event, int64, error) {
	var events []Event
	var total int64

	query := r.db.Model(&Event{}).Where("school_id = ?", schoolID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("start_time asc").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

func (r *eventRepository) UpdateEvent(e *Event) error {
	return r.db.Save(e).Error
}

func (r *eventRepository) DeleteEvent(id uint) error {
	return r.db.Unscoped().Delete(&Event{}, id).Error
}

// ResolveSchoolIDBySlug maps a tenant subdomain slug to its school id.
// Queried by table name to avoid a dependency on the school package.
// Returns 0 when no active school matches.
func (r *eventRepository) ResolveSchoolIDBySlug(slug string) (uint, error) {
	var id uint
	err := r.db.Table("schools").
		Select("id").
		Where("slug = ? AND active = ? AND deleted_at IS NULL", slug, true).
		Scan(&id).Error
	return id, err
}
