package seed

import (
	"intranet/config"
	"intranet/internal/logger"
	. "intranet/internal/models"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	members := []Member{
		{
			FirstName:          "Bob",
			LastName:           "Parsons",
			DisplayName:        "Bob Parsons",
			Email:              stringPtr("bob.parsons@example.com"),
			BadgeNumber:        stringPtr("101"),
			Rank:               "Captain",
			ExternalTrainingID: stringPtr("ts-101"),
			IsActiveDuty:       true,
		}, {
			FirstName:          "Ada",
			LastName:           "Lovelace",
			DisplayName:        "Ada Lovelace",
			Email:              stringPtr("ada.lovelace@example.com"),
			BadgeNumber:        stringPtr("102"),
			Rank:               "Lieutenant",
			ExternalTrainingID: stringPtr("ts-102"),
			IsActiveDuty:       true,
		}, {
			FirstName:    "Grace",
			LastName:     "Hopper",
			DisplayName:  "Grace Hopper",
			Email:        stringPtr("grace.hopper@example.com"),
			BadgeNumber:  stringPtr("103"),
			Rank:         "Firefighter",
			IsActiveDuty: false,
		},
	}

	for _, member := range members {
		var existingMember Member
		if err := db.First(&existingMember, "badge_number = ?", member.BadgeNumber).Error; err == nil {
			log.Info("Member already exists", "member", member)
			continue
		}
		log.Info("Seeding member", "member", member)
		if err := db.Create(&member).Error; err != nil {
			log.Er("failed to create member", err, "member", member)
		}
	}

	requirements := []TrainingRequirement{
		{
			Name:             "CPR Certification",
			RequirementType:  "ANNUAL",
			Frequency:        "BIENNIAL",
			ValidityMonths:   intPtr(24),
			ProviderCourseID: "cpr-101",
			IsActive:         true,
		}, {
			Name:             "Hazmat Awareness",
			RequirementType:  "ANNUAL",
			Frequency:        "ANNUAL",
			ValidityMonths:   intPtr(12),
			ProviderCourseID: "hazmat-100",
			IsActive:         true,
		}, {
			Name:            "Driver Operator",
			RequirementType: "DRIVER",
			Frequency:       "ONCE",
			IsActive:        true,
		},
	}

	for _, requirement := range requirements {
		var existingRequirement TrainingRequirement
		if err := db.First(&existingRequirement, "name = ?", requirement.Name).Error; err == nil {
			log.Info("Requirement already exists", "requirement", requirement)
			continue
		}
		log.Info("Seeding requirement", "requirement", requirement)
		if err := db.Create(&requirement).Error; err != nil {
			log.Er("failed to create requirement", err, "requirement", requirement)
		}
	}

	return nil
}
