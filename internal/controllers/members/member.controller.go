package memberController

import (
	"context"

	"intranet/config"
	"intranet/internal/logger"
	. "intranet/internal/models"
	"intranet/internal/repositories"
)

type MemberController struct {
	memberRepo repositories.MemberRepository
	Config     config.Config
	log        logger.Logger
}

func New(memberRepo repositories.MemberRepository, config config.Config) *MemberController {
	return &MemberController{
		memberRepo: memberRepo,
		Config:     config,
		log:        logger.New("MemberController"),
	}
}

func (c *MemberController) GetMembers(ctx context.Context) ([]*Member, error) {
	log := c.log.Function("GetMembers")

	members, err := c.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get members", err)
	}

	return members, nil
}

func (c *MemberController) GetMember(ctx context.Context, id string) (*Member, error) {
	log := c.log.Function("GetMember")

	if id == "" {
		return nil, log.Error("invalid member ID", "id", id)
	}

	member, err := c.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get member", err, "id", id)
	}

	return member, nil
}

func (c *MemberController) CreateMember(ctx context.Context, member *Member) error {
	log := c.log.Function("CreateMember")

	if member.FirstName == "" || member.LastName == "" {
		return log.Error("member name is required")
	}

	if err := c.memberRepo.Create(ctx, member); err != nil {
		return log.Err("failed to create member", err, "member", member)
	}

	return nil
}

func (c *MemberController) UpdateMember(ctx context.Context, member *Member) error {
	log := c.log.Function("UpdateMember")

	if member.ID == "" {
		return log.Error("invalid member ID")
	}

	if err := c.memberRepo.Update(ctx, member); err != nil {
		return log.Err("failed to update member", err, "member", member)
	}

	return nil
}

func (c *MemberController) DeleteMember(ctx context.Context, id string) error {
	log := c.log.Function("DeleteMember")

	if id == "" {
		return log.Error("invalid member ID", "id", id)
	}

	if err := c.memberRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete member", err, "id", id)
	}

	return nil
}
