package services

import (
	"context"
	"math"
	"time"

	"intranet/internal/integrations"
	"intranet/internal/logger"
	. "intranet/internal/models"
	"intranet/internal/repositories"
)

// Days before expiration at which a completed record counts as upcoming.
const expirationWarningDays = 30

type ComplianceStatus struct {
	TotalRequirements  int     `json:"totalRequirements"`
	Completed          int     `json:"completed"`
	Expired            int     `json:"expired"`
	UpcomingExpiration int     `json:"upcomingExpiration"`
	ComplianceRate     float64 `json:"complianceRate"`
}

// TrainingService drives syncs of normalized training records into storage
// using whatever provider the registry resolves. The provider handle is
// obtained once at construction; when none is configured every operation is
// a logged no-op so a scheduled job degrades instead of crashing.
type TrainingService struct {
	provider        integrations.TrainingProvider
	recordRepo      repositories.TrainingRecordRepository
	requirementRepo repositories.TrainingRequirementRepository
	memberRepo      repositories.MemberRepository
	log             logger.Logger
}

func NewTrainingService(
	registry *integrations.Registry,
	recordRepo repositories.TrainingRecordRepository,
	requirementRepo repositories.TrainingRequirementRepository,
	memberRepo repositories.MemberRepository,
) *TrainingService {
	log := logger.New("TrainingService")

	provider := registry.GetTrainingProvider(context.Background(), "")
	if provider == nil {
		log.Warn("no training provider configured")
	}

	return &TrainingService{
		provider:        provider,
		recordRepo:      recordRepo,
		requirementRepo: requirementRepo,
		memberRepo:      memberRepo,
		log:             log,
	}
}

// SyncMemberRecords fetches the member's records from the provider and
// upserts them. The returned count reflects insertions only, so callers can
// tell "new training completed" from "record refreshed".
func (s *TrainingService) SyncMemberRecords(ctx context.Context, member *Member) int {
	log := s.log.Function("SyncMemberRecords")

	if s.provider == nil {
		log.ErMsg("cannot sync: no training provider configured")
		return 0
	}
	if member.ExternalTrainingID == nil || *member.ExternalTrainingID == "" {
		log.Warn("member has no external training id", "memberID", member.ID)
		return 0
	}

	records := s.provider.GetMemberRecords(ctx, *member.ExternalTrainingID)

	created := 0
	for _, record := range records {
		row := recordFromStandard(member.ID, record)
		wasCreated, err := s.recordRepo.Upsert(ctx, row)
		if err != nil {
			log.Er("failed to store training record", err,
				"memberID", member.ID, "providerRecordId", record.ProviderRecordID)
			continue
		}
		if wasCreated {
			created++
			log.Info("created new training record",
				"memberID", member.ID, "courseName", record.CourseName)
		}
	}

	return created
}

// SyncAllMembers syncs every active-duty member that has an external
// training id. Returns the number of members processed and the total count
// of newly created records.
func (s *TrainingService) SyncAllMembers(ctx context.Context) (int, int) {
	log := s.log.Function("SyncAllMembers")

	if s.provider == nil {
		log.ErMsg("cannot sync: no training provider configured")
		return 0, 0
	}

	members, err := s.memberRepo.GetActive(ctx)
	if err != nil {
		log.Er("failed to load active members", err)
		return 0, 0
	}

	membersSynced := 0
	recordsCreated := 0
	for _, member := range members {
		if member.ExternalTrainingID == nil || *member.ExternalTrainingID == "" {
			continue
		}
		recordsCreated += s.SyncMemberRecords(ctx, member)
		membersSynced++
	}

	log.Info("member sync complete", "members", membersSynced, "created", recordsCreated)
	return membersSynced, recordsCreated
}

// EnrollInCourse enrolls the member in a course through the provider.
func (s *TrainingService) EnrollInCourse(ctx context.Context, member *Member, courseID string) bool {
	log := s.log.Function("EnrollInCourse")

	if s.provider == nil {
		log.ErMsg("cannot enroll: no training provider configured")
		return false
	}
	if member.ExternalTrainingID == nil || *member.ExternalTrainingID == "" {
		log.Warn("member has no external training id", "memberID", member.ID)
		return false
	}

	return s.provider.EnrollMember(ctx, *member.ExternalTrainingID, courseID)
}

// CourseCatalog returns the provider's catalog, empty when unconfigured.
func (s *TrainingService) CourseCatalog(ctx context.Context) []integrations.CourseInfo {
	if s.provider == nil {
		return nil
	}
	return s.provider.GetCourseCatalog(ctx)
}

// Certifications returns the member's active certifications from the
// provider, empty when unconfigured.
func (s *TrainingService) Certifications(ctx context.Context, member *Member) []integrations.Certification {
	if s.provider == nil {
		return nil
	}
	if member.ExternalTrainingID == nil || *member.ExternalTrainingID == "" {
		return nil
	}
	return s.provider.GetCertifications(ctx, *member.ExternalTrainingID)
}

// ComplianceStatus reports how the member stands against the active training
// requirements, based on the latest completed record per requirement.
func (s *TrainingService) ComplianceStatus(ctx context.Context, member *Member) (ComplianceStatus, error) {
	log := s.log.Function("ComplianceStatus")

	requirements, err := s.requirementRepo.GetActive(ctx)
	if err != nil {
		return ComplianceStatus{}, log.Err("failed to load training requirements", err)
	}

	now := time.Now().UTC()
	status := ComplianceStatus{TotalRequirements: len(requirements)}

	for _, requirement := range requirements {
		record, err := s.recordRepo.GetLatestCompleted(ctx, member.ID, requirement.Name)
		if err != nil {
			log.Er("failed to check requirement", err,
				"memberID", member.ID, "requirement", requirement.Name)
			continue
		}
		if record == nil {
			continue
		}

		if record.ExpirationDate == nil {
			status.Completed++
			continue
		}

		switch {
		case record.ExpirationDate.Before(now):
			status.Expired++
		case record.ExpirationDate.Sub(now) < expirationWarningDays*24*time.Hour:
			status.UpcomingExpiration++
			status.Completed++
		default:
			status.Completed++
		}
	}

	if status.TotalRequirements > 0 {
		rate := float64(status.Completed) / float64(status.TotalRequirements) * 100
		status.ComplianceRate = math.Round(rate*10) / 10
	}

	return status, nil
}

func recordFromStandard(memberID string, record integrations.StandardTrainingRecord) *TrainingRecord {
	row := &TrainingRecord{
		MemberID:         memberID,
		Provider:         record.Provider,
		ProviderRecordID: record.ProviderRecordID,
		CourseName:       record.CourseName,
		CourseID:         record.CourseID,
		CompletionDate:   record.CompletionDate,
		ExpirationDate:   record.ExpirationDate,
		Score:            record.Score,
		Status:           string(record.Status),
	}

	if record.CertificateID != "" {
		row.CertificateID = &record.CertificateID
	}
	if record.Instructor != "" {
		row.Instructor = &record.Instructor
	}
	if len(record.Metadata) > 0 {
		row.Metadata = JSONMap(record.Metadata)
	}

	return row
}
