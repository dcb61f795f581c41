package integrations

import "time"

type TrainingStatus string

const (
	StatusCompleted  TrainingStatus = "completed"
	StatusInProgress TrainingStatus = "in_progress"
	StatusFailed     TrainingStatus = "failed"
	StatusExpired    TrainingStatus = "expired"
)

// StandardTrainingRecord is the provider-agnostic shape for one training or
// certification completion. Adapters translate provider-native records into
// this; nothing past the adapter boundary sees a native format.
type StandardTrainingRecord struct {
	MemberID         string         `json:"memberId"`
	CourseName       string         `json:"courseName"`
	CourseID         string         `json:"courseId"`
	CompletionDate   *time.Time     `json:"completionDate"`
	ExpirationDate   *time.Time     `json:"expirationDate"`
	Score            *float64       `json:"score"`
	Status           TrainingStatus `json:"status"`
	CertificateID    string         `json:"certificateId"`
	Instructor       string         `json:"instructor"`
	Provider         string         `json:"provider"`
	ProviderRecordID string         `json:"providerRecordId"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// StandardCalendarEvent is the provider-agnostic calendar event shape.
type StandardCalendarEvent struct {
	Title       string         `json:"title"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     time.Time      `json:"endTime"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	Attendees   []string       `json:"attendees"` // email addresses
	EventID     string         `json:"eventId"`
	Provider    string         `json:"provider"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CourseInfo describes one entry of a provider's course catalog.
type CourseInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Hours    float64 `json:"hours"`
	Active   bool    `json:"active"`
}

// Certification describes one active certification held by a member.
type Certification struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Number         string     `json:"number"`
	IssueDate      *time.Time `json:"issueDate"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

// FileInfo describes one stored document.
type FileInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Folder      string            `json:"folder"`
	ContentType string            `json:"contentType"`
	Size        int64             `json:"size"`
	Modified    *time.Time        `json:"modified"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// DeriveStatus resolves a record's status from what the provider reported and
// the record's expiration. An explicit failed or in-progress status from the
// provider wins; otherwise a past expiration forces expired.
func DeriveStatus(reported TrainingStatus, expiration *time.Time, now time.Time) TrainingStatus {
	switch reported {
	case StatusFailed:
		return StatusFailed
	case StatusInProgress:
		return StatusInProgress
	}

	if expiration != nil && expiration.Before(now) {
		return StatusExpired
	}

	if reported == StatusExpired {
		return StatusExpired
	}

	return StatusCompleted
}
