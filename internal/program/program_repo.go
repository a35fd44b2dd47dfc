package program

import (
	"errors"

	"gorm.io/gorm"
)

// ProgramRepository defines the interface for program and season data operations.
type ProgramRepository interface {
	// Program operations
	CreateProgram(p *Program) error
	CreateProgramWithSeason(p *Program, s *Season) error
	GetProgramByID(id uint) (*Program, error)
	FindProgramByNameAndGender(schoolID uint, name, gender string) (*Program, error)
	GetProgramsBySchool(schoolID uint) ([]Program, error)
	UpdateProgram(p *Program) error
	DeleteProgramWithSeasons(id uint) error

	// Season operations
	CreateSeason(s *Season) error
	GetSeasonByID(id uint) (*Season, error)
	GetSeasonsByProgram(programID uint) ([]Season, error)
	GetLatestSeason(programID uint) (*Season, error)
	GetSeasonByProgramAndYear(programID uint, year int) (*Season, error)
	UpdateSeason(s *Season) error
	DeleteSeason(id uint) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new instance of ProgramRepository.
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

// --- Program Operations ---

func (r *programRepository) CreateProgram(p *Program) error {
	return r.db.Create(p).Error
}

// CreateProgramWithSeason inserts a program and its initial season in one
// transaction so a season insert failure cannot leave a half-created program.
func (r *programRepository) CreateProgramWithSeason(p *Program, s *Season) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		s.ProgramID = p.ID
		return tx.Create(s).Error
	})
}

func (r *programRepository) GetProgramByID(id uint) (*Program, error) {
	var p Program
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *programRepository) FindProgramByNameAndGender(schoolID uint, name, gender string) (*Program, error) {
	var p Program
	err := r.db.
		Where("school_id = ? AND name = ? AND gender = ?", schoolID, name, gender).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *programRepository) GetProgramsBySchool(schoolID uint) ([]Program, error) {
	var programs []Program
	err := r.db.
		Where("school_id = ?", schoolID).
		Order("name asc").
		Find(&programs).Error
	return programs, err
}

func (r *programRepository) UpdateProgram(p *Program) error {
	return r.db.Save(p).Error
}

// DeleteProgramWithSeasons removes the program's seasons and then the program
// itself inside one transaction; a mid-sequence failure rolls everything back.
func (r *programRepository) DeleteProgramWithSeasons(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("program_id = ?", id).Delete(&Season{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&Program{}, id).Error
	})
}

// --- Season Operations ---

func (r *programRepository) CreateSeason(s *Season) error {
	return r.db.Create(s).Error
}

func (r *programRepository) GetSeasonByID(id uint) (*Season, error) {
	var s Season
	if err := r.db.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *programRepository) GetSeasonsByProgram(programID uint) ([]Season, error) {
	var seasons []Season
	err := r.db.
		Where("program_id = ?", programID).
		Order("year desc").
		Find(&seasons).Error
	return seasons, err
}

// GetLatestSeason returns the single highest-year season for a program, or
// nil when the program has none.
func (r *programRepository) GetLatestSeason(programID uint) (*Season, error) {
	var s Season
	err := r.db.
		Where("program_id = ?", programID).
		Order("year desc").
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *programRepository) GetSeasonByProgramAndYear(programID uint, year int) (*Season, error) {
	var s Season
	err := r.db.
		Where("program_id = ? AND year = ?", programID, year).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *programRepository) UpdateSeason(s *Season) error {
	return r.db.Save(s).Error
}

func (r *programRepository) DeleteSeason(id uint) error {
	return r.db.Unscoped().Delete(&Season{}, id).Error
}
