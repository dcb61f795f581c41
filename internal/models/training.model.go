package models

import "time"

// TrainingRecord is one synced training/certification completion. Rows are
// keyed by (member, provider, provider record id); a re-sync of the same
// provider record overwrites the mutable fields instead of inserting.
type TrainingRecord struct {
	BaseUUIDModel
	MemberID string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_training_provider_record,priority:1" json:"memberId"`
	Member   *Member `gorm:"foreignKey:MemberID"                                                           json:"member,omitempty"`

	Provider         string `gorm:"type:varchar(50);not null;uniqueIndex:idx_training_provider_record,priority:2"  json:"provider"`
	ProviderRecordID string `gorm:"type:varchar(100);not null;uniqueIndex:idx_training_provider_record,priority:3" json:"providerRecordId"`

	CourseName     string     `gorm:"type:varchar(200)"         json:"courseName"`
	CourseID       string     `gorm:"type:varchar(100)"         json:"courseId"`
	CompletionDate *time.Time `json:"completionDate"`
	ExpirationDate *time.Time `json:"expirationDate"`
	Score          *float64   `json:"score"`
	Status         string     `gorm:"type:varchar(20);not null" json:"status"` // 'completed', 'in_progress', 'failed', 'expired'
	CertificateID  *string    `gorm:"type:varchar(100)"         json:"certificateId"`
	Instructor     *string    `gorm:"type:varchar(200)"         json:"instructor"`
	Metadata       JSONMap    `gorm:"type:text"                 json:"metadata,omitempty"`
}

// TrainingRequirement is a competency members must hold, matched to synced
// records by course name for compliance reporting.
type TrainingRequirement struct {
	BaseUUIDModel
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	Description     string `gorm:"type:text"                              json:"description"`
	RequirementType string `gorm:"type:varchar(20);not null"              json:"requirementType"` // 'INITIAL', 'ANNUAL', 'SKILLS', 'DRIVER', 'OFFICER'
	Frequency       string `gorm:"type:varchar(20);not null"              json:"frequency"`       // 'ONCE', 'ANNUAL', 'BIENNIAL', 'TRIENNIAL'
	ValidityMonths  *int   `json:"validityMonths"`

	// Course id on the configured training provider's side.
	ProviderCourseID string `gorm:"type:varchar(100)" json:"providerCourseId"`

	IsActive bool `gorm:"not null;default:true" json:"isActive"`
}
