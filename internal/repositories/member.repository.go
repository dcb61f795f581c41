package repositories

import (
	"context"
	"time"

	"intranet/internal/database"
	"intranet/internal/logger"
	. "intranet/internal/models"
)

const MEMBER_CACHE_EXPIRY = 1 * time.Hour

type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*Member, error)
	GetAll(ctx context.Context) ([]*Member, error)
	GetActive(ctx context.Context) ([]*Member, error)
	Create(ctx context.Context, member *Member) error
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id string) error
}

type memberRepository struct {
	db  database.DB
	log logger.Logger
}

func NewMember(db database.DB) MemberRepository {
	return &memberRepository{
		db:  db,
		log: logger.New("memberRepository"),
	}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*Member, error) {
	log := r.log.Function("GetByID")

	var member Member
	found, err := database.NewCacheBuilder(r.db.Cache.Member, id).
		WithContext(ctx).
		Get(&member)
	if err != nil {
		log.Warn("failed to get member from cache", "memberID", id, "error", err)
	}
	if found {
		return &member, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get member by id", err, "id", id)
	}

	if err := r.addMemberToCache(ctx, &member); err != nil {
		log.Warn("failed to add member to cache", "memberID", id, "error", err)
	}

	return &member, nil
}

func (r *memberRepository) GetAll(ctx context.Context) ([]*Member, error) {
	log := r.log.Function("GetAll")

	var members []*Member
	if err := r.db.SQLWithContext(ctx).Order("last_name, first_name").Find(&members).Error; err != nil {
		return nil, log.Err("failed to get all members", err)
	}

	return members, nil
}

func (r *memberRepository) GetActive(ctx context.Context) ([]*Member, error) {
	log := r.log.Function("GetActive")

	var members []*Member
	if err := r.db.SQLWithContext(ctx).
		Where("is_active_duty = ?", true).
		Order("last_name, first_name").
		Find(&members).Error; err != nil {
		return nil, log.Err("failed to get active members", err)
	}

	return members, nil
}

func (r *memberRepository) Create(ctx context.Context, member *Member) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(member).Error; err != nil {
		return log.Err("failed to create member", err, "member", member)
	}

	if err := r.addMemberToCache(ctx, member); err != nil {
		log.Warn("failed to add member to cache", "memberID", member.ID, "error", err)
	}

	return nil
}

func (r *memberRepository) Update(ctx context.Context, member *Member) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(member).Error; err != nil {
		return log.Err("failed to update member", err, "member", member)
	}

	if err := r.addMemberToCache(ctx, member); err != nil {
		log.Warn("failed to update member in cache", "memberID", member.ID, "error", err)
	}

	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(&Member{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete member", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Member, id).Delete(); err != nil {
		log.Warn("failed to remove member from cache", "memberID", id, "error", err)
	}

	return nil
}

func (r *memberRepository) addMemberToCache(ctx context.Context, member *Member) error {
	return database.NewCacheBuilder(r.db.Cache.Member, member.ID).
		WithStruct(member).
		WithTTL(MEMBER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
