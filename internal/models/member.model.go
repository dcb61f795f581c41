package models

import "time"

type Member struct {
	BaseUUIDModel
	FirstName   string  `gorm:"type:varchar(100);not null"        json:"firstName"`
	LastName    string  `gorm:"type:varchar(100);not null"        json:"lastName"`
	DisplayName string  `gorm:"type:varchar(200)"                 json:"displayName"`
	Email       *string `gorm:"type:varchar(255);uniqueIndex"     json:"email"`
	BadgeNumber *string `gorm:"type:varchar(20);uniqueIndex"      json:"badgeNumber"`
	Phone       string  `gorm:"type:varchar(17)"                  json:"phone"`
	Rank        string  `gorm:"type:varchar(50)"                  json:"rank"`

	// Member id on the configured training provider's side.
	ExternalTrainingID *string `gorm:"type:varchar(100)" json:"externalTrainingId"`

	IsActiveDuty bool       `gorm:"not null;default:true" json:"isActiveDuty"`
	HireDate     *time.Time `json:"hireDate"`
}

func (m Member) FullName() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.FirstName + " " + m.LastName
}
