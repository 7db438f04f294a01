package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Anurag02012004/ai-resume-project/internal/model"
)

type profileStore struct {
	db *gorm.DB
}

var _ ProfileStore = (*profileStore)(nil)

// NewProfileStore creates a ProfileStore backed by the given database.
func NewProfileStore(db *gorm.DB) ProfileStore {
	return &profileStore{db: db}
}

// Migrate creates or updates the profile tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Project{},
		&model.Experience{},
		&model.Skill{},
		&model.Education{},
		&model.Certificate{},
	)
}

// Snapshot fetches the entire profile in one consistent read.
func (s *profileStore) Snapshot(ctx context.Context) (*model.ProfileSnapshot, error) {
	snapshot := &model.ProfileSnapshot{}

	var err error
	if snapshot.Projects, err = s.Projects(ctx); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if snapshot.Experiences, err = s.Experiences(ctx); err != nil {
		return nil, fmt.Errorf("failed to load experiences: %w", err)
	}
	if snapshot.Skills, err = s.Skills(ctx); err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	if snapshot.Education, err = s.Education(ctx); err != nil {
		return nil, fmt.Errorf("failed to load education: %w", err)
	}
	if snapshot.Certificates, err = s.Certificates(ctx); err != nil {
		return nil, fmt.Errorf("failed to load certificates: %w", err)
	}

	return snapshot, nil
}

// Projects lists all projects ordered by ID.
func (s *profileStore) Projects(ctx context.Context) ([]*model.Project, error) {
	var projects []*model.Project
	if err := s.db.WithContext(ctx).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Experiences lists all work experience entries ordered by ID.
func (s *profileStore) Experiences(ctx context.Context) ([]*model.Experience, error) {
	var experiences []*model.Experience
	if err := s.db.WithContext(ctx).Order("id").Find(&experiences).Error; err != nil {
		return nil, err
	}
	return experiences, nil
}

// Skills lists all skills ordered by ID, which keeps category grouping
// stable across reads.
func (s *profileStore) Skills(ctx context.Context) ([]*model.Skill, error) {
	var skills []*model.Skill
	if err := s.db.WithContext(ctx).Order("id").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// Education lists all education entries ordered by ID.
func (s *profileStore) Education(ctx context.Context) ([]*model.Education, error) {
	var education []*model.Education
	if err := s.db.WithContext(ctx).Order("id").Find(&education).Error; err != nil {
		return nil, err
	}
	return education, nil
}

// Certificates lists all certificates ordered by ID.
func (s *profileStore) Certificates(ctx context.Context) ([]*model.Certificate, error) {
	var certificates []*model.Certificate
	if err := s.db.WithContext(ctx).Order("id").Find(&certificates).Error; err != nil {
		return nil, err
	}
	return certificates, nil
}
