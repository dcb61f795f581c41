package trainingController

import (
	"context"

	"intranet/internal/integrations"
	"intranet/internal/logger"
	. "intranet/internal/models"
	"intranet/internal/repositories"
	"intranet/internal/services"
)

type TrainingController struct {
	trainingService *services.TrainingService
	recordRepo      repositories.TrainingRecordRepository
	memberRepo      repositories.MemberRepository
	registry        *integrations.Registry
	log             logger.Logger
}

func New(
	trainingService *services.TrainingService,
	recordRepo repositories.TrainingRecordRepository,
	memberRepo repositories.MemberRepository,
	registry *integrations.Registry,
) *TrainingController {
	return &TrainingController{
		trainingService: trainingService,
		recordRepo:      recordRepo,
		memberRepo:      memberRepo,
		registry:        registry,
		log:             logger.New("TrainingController"),
	}
}

func (c *TrainingController) GetMemberRecords(ctx context.Context, memberID string) ([]*TrainingRecord, error) {
	log := c.log.Function("GetMemberRecords")

	if memberID == "" {
		return nil, log.Error("invalid member ID", "memberID", memberID)
	}

	records, err := c.recordRepo.GetByMember(ctx, memberID)
	if err != nil {
		return nil, log.Err("failed to get training records", err, "memberID", memberID)
	}

	return records, nil
}

// SyncMember syncs one member from the configured provider and returns the
// count of newly created records.
func (c *TrainingController) SyncMember(ctx context.Context, memberID string) (int, error) {
	log := c.log.Function("SyncMember")

	member, err := c.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return 0, log.Err("failed to get member", err, "memberID", memberID)
	}

	return c.trainingService.SyncMemberRecords(ctx, member), nil
}

func (c *TrainingController) SyncAll(ctx context.Context) (int, int) {
	return c.trainingService.SyncAllMembers(ctx)
}

func (c *TrainingController) GetCompliance(ctx context.Context, memberID string) (services.ComplianceStatus, error) {
	log := c.log.Function("GetCompliance")

	member, err := c.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return services.ComplianceStatus{}, log.Err("failed to get member", err, "memberID", memberID)
	}

	return c.trainingService.ComplianceStatus(ctx, member)
}

func (c *TrainingController) GetCatalog(ctx context.Context) []integrations.CourseInfo {
	return c.trainingService.CourseCatalog(ctx)
}

func (c *TrainingController) GetCertifications(ctx context.Context, memberID string) ([]integrations.Certification, error) {
	log := c.log.Function("GetCertifications")

	member, err := c.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, log.Err("failed to get member", err, "memberID", memberID)
	}

	return c.trainingService.Certifications(ctx, member), nil
}

func (c *TrainingController) Enroll(ctx context.Context, memberID, courseID string) (bool, error) {
	log := c.log.Function("Enroll")

	if courseID == "" {
		return false, log.Error("invalid course ID")
	}

	member, err := c.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return false, log.Err("failed to get member", err, "memberID", memberID)
	}

	return c.trainingService.EnrollInCourse(ctx, member, courseID), nil
}

// TestProvider probes the named (or configured) provider for a category.
func (c *TrainingController) TestProvider(ctx context.Context, category, name string) integrations.ProviderTestResult {
	return c.registry.TestProvider(ctx, integrations.Category(category), name)
}

// ClearProviderCache drops cached adapter instances so the next access
// re-instantiates from current configuration.
func (c *TrainingController) ClearProviderCache() {
	c.registry.ClearCache()
	c.log.Function("ClearProviderCache").Info("integration provider cache cleared")
}
