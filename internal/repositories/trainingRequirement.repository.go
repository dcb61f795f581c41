package repositories

import (
	"context"

	"intranet/internal/database"
	"intranet/internal/logger"
	. "intranet/internal/models"
)

type TrainingRequirementRepository interface {
	GetActive(ctx context.Context) ([]*TrainingRequirement, error)
	GetAll(ctx context.Context) ([]*TrainingRequirement, error)
}

type trainingRequirementRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTrainingRequirement(db database.DB) TrainingRequirementRepository {
	return &trainingRequirementRepository{
		db:  db,
		log: logger.New("trainingRequirementRepository"),
	}
}

func (r *trainingRequirementRepository) GetActive(ctx context.Context) ([]*TrainingRequirement, error) {
	log := r.log.Function("GetActive")

	var requirements []*TrainingRequirement
	if err := r.db.SQLWithContext(ctx).
		Where("is_active = ?", true).
		Order("requirement_type, name").
		Find(&requirements).Error; err != nil {
		return nil, log.Err("failed to get active requirements", err)
	}

	return requirements, nil
}

func (r *trainingRequirementRepository) GetAll(ctx context.Context) ([]*TrainingRequirement, error) {
	log := r.log.Function("GetAll")

	var requirements []*TrainingRequirement
	if err := r.db.SQLWithContext(ctx).
		Order("requirement_type, name").
		Find(&requirements).Error; err != nil {
		return nil, log.Err("failed to get requirements", err)
	}

	return requirements, nil
}
