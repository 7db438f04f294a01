package model

// Project represents a portfolio project in the database.
type Project struct {
	ID          uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string   `json:"title" gorm:"size:255;not null"`
	Description string   `json:"description" gorm:"type:text;not null"`
	RepoURL     *string  `json:"repo_url" gorm:"size:512"`
	TechStack   []string `json:"tech_stack" gorm:"serializer:json"`
}

// TableName returns the table name for GORM.
func (p *Project) TableName() string {
	return "projects"
}

// Experience represents a work experience entry.
type Experience struct {
	ID          uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Role        string   `json:"role" gorm:"size:255;not null"`
	Company     string   `json:"company" gorm:"size:255;not null"`
	Location    string   `json:"location" gorm:"size:255"`
	StartDate   *string  `json:"start_date" gorm:"size:64"`
	EndDate     *string  `json:"end_date" gorm:"size:64"`
	Description []string `json:"description" gorm:"serializer:json"`
}

// TableName returns the table name for GORM.
func (e *Experience) TableName() string {
	return "experiences"
}

// Skill represents a single named skill within a category.
type Skill struct {
	ID       uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string `json:"name" gorm:"size:128;not null"`
	Category string `json:"category" gorm:"size:128;not null;index:idx_skill_category"`
}

// TableName returns the table name for GORM.
func (s *Skill) TableName() string {
	return "skills"
}

// Education represents an education entry.
type Education struct {
	ID          uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Institution string   `json:"institution" gorm:"size:255;not null"`
	Degree      string   `json:"degree" gorm:"size:255;not null"`
	Location    string   `json:"location" gorm:"size:255"`
	StartDate   string   `json:"start_date" gorm:"size:64"`
	EndDate     *string  `json:"end_date" gorm:"size:64"`
	Description []string `json:"description" gorm:"serializer:json"`
}

// TableName returns the table name for GORM.
func (e *Education) TableName() string {
	return "education"
}

// Certificate represents a certification entry.
type Certificate struct {
	ID            uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string  `json:"title" gorm:"size:255;not null"`
	Issuer        string  `json:"issuer" gorm:"size:255;not null"`
	IssueDate     string  `json:"issue_date" gorm:"size:64"`
	CredentialURL *string `json:"credential_url" gorm:"size:512"`
	Description   *string `json:"description" gorm:"type:text"`
}

// TableName returns the table name for GORM.
func (c *Certificate) TableName() string {
	return "certificates"
}

// ProfileSnapshot is a read-only view of the whole profile, fetched fresh
// for each request so answers always reflect current data.
type ProfileSnapshot struct {
	Projects     []*Project     `json:"projects"`
	Experiences  []*Experience  `json:"experiences"`
	Skills       []*Skill       `json:"skills"`
	Education    []*Education   `json:"education"`
	Certificates []*Certificate `json:"certificates"`
}

// IsEmpty reports whether the snapshot contains no entities at all.
func (s *ProfileSnapshot) IsEmpty() bool {
	return s == nil ||
		(len(s.Projects) == 0 && len(s.Experiences) == 0 && len(s.Skills) == 0 &&
			len(s.Education) == 0 && len(s.Certificates) == 0)
}
