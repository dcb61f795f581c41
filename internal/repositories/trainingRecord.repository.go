package repositories

import (
	"context"
	"errors"
	"time"

	"intranet/internal/database"
	"intranet/internal/logger"
	. "intranet/internal/models"

	"gorm.io/gorm"
)

const TRAINING_RECORDS_CACHE_EXPIRY = 15 * time.Minute

type TrainingRecordRepository interface {
	// Upsert stores record keyed by (member, provider, provider record id).
	// The returned bool reports whether a new row was inserted; matching rows
	// have their mutable fields overwritten instead.
	Upsert(ctx context.Context, record *TrainingRecord) (bool, error)
	GetByMember(ctx context.Context, memberID string) ([]*TrainingRecord, error)
	GetLatestCompleted(ctx context.Context, memberID, courseName string) (*TrainingRecord, error)
}

type trainingRecordRepository struct {
	db  database.DB
	log logger.Logger
}

func NewTrainingRecord(db database.DB) TrainingRecordRepository {
	return &trainingRecordRepository{
		db:  db,
		log: logger.New("trainingRecordRepository"),
	}
}

func (r *trainingRecordRepository) Upsert(ctx context.Context, record *TrainingRecord) (bool, error) {
	log := r.log.Function("Upsert")

	var existing TrainingRecord
	err := r.db.SQLWithContext(ctx).
		Where("member_id = ? AND provider = ? AND provider_record_id = ?",
			record.MemberID, record.Provider, record.ProviderRecordID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.SQLWithContext(ctx).Create(record).Error; err != nil {
			return false, log.Err("failed to create training record", err, "record", record)
		}
		r.invalidateMemberRecords(record.MemberID)
		return true, nil
	}
	if err != nil {
		return false, log.Err("failed to look up training record", err,
			"provider", record.Provider, "providerRecordId", record.ProviderRecordID)
	}

	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := r.db.SQLWithContext(ctx).Save(record).Error; err != nil {
		return false, log.Err("failed to update training record", err, "record", record)
	}
	r.invalidateMemberRecords(record.MemberID)

	return false, nil
}

func (r *trainingRecordRepository) GetByMember(ctx context.Context, memberID string) ([]*TrainingRecord, error) {
	log := r.log.Function("GetByMember")

	var records []*TrainingRecord
	found, err := database.NewCacheBuilder(r.db.Cache.Training, memberRecordsKey(memberID)).
		WithContext(ctx).
		Get(&records)
	if err != nil {
		log.Warn("failed to get training records from cache", "memberID", memberID, "error", err)
	}
	if found {
		return records, nil
	}

	if err := r.db.SQLWithContext(ctx).
		Where("member_id = ?", memberID).
		Order("completion_date DESC").
		Find(&records).Error; err != nil {
		return nil, log.Err("failed to get training records", err, "memberID", memberID)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Training, memberRecordsKey(memberID)).
		WithStruct(records).
		WithTTL(TRAINING_RECORDS_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache training records", "memberID", memberID, "error", err)
	}

	return records, nil
}

func (r *trainingRecordRepository) GetLatestCompleted(ctx context.Context, memberID, courseName string) (*TrainingRecord, error) {
	log := r.log.Function("GetLatestCompleted")

	var record TrainingRecord
	err := r.db.SQLWithContext(ctx).
		Where("member_id = ? AND course_name = ? AND status = ?", memberID, courseName, "completed").
		Order("completion_date DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, log.Err("failed to get latest completed record", err,
			"memberID", memberID, "courseName", courseName)
	}

	return &record, nil
}

func (r *trainingRecordRepository) invalidateMemberRecords(memberID string) {
	if err := database.NewCacheBuilder(r.db.Cache.Training, memberRecordsKey(memberID)).Delete(); err != nil {
		r.log.Function("invalidateMemberRecords").
			Warn("failed to invalidate training records cache", "memberID", memberID, "error", err)
	}
}

func memberRecordsKey(memberID string) string {
	return "records:" + memberID
}
