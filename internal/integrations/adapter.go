package integrations

import (
	"context"
	"time"
)

type Category string

const (
	CategoryTraining        Category = "training"
	CategoryCalendar        Category = "calendar"
	CategoryDocumentStorage Category = "document_storage"
	CategoryNotifications   Category = "notifications"
)

// ProviderConfig carries provider-specific settings. Keys are opaque to the
// registry; each adapter documents what it reads.
type ProviderConfig map[string]string

// TestResult reports the outcome of a connection probe.
type TestResult struct {
	Connected bool           `json:"connected"`
	Provider  string         `json:"provider"`
	Error     string         `json:"error,omitempty"`
	Detail    map[string]any `json:"detail,omitempty"`
}

// Adapter is the base capability every provider implementation supports.
//
// Authenticate returns false (with a nil error) for an ordinary rejection by
// the provider; it returns an error only when configuration makes the attempt
// impossible, such as a missing base URL. TestConnection is a cheap probe
// that never assumes Authenticate was called and reports unreachability as
// Connected=false rather than an error. IsAuthenticated reflects the last
// Authenticate outcome without re-probing.
type Adapter interface {
	Name() string
	Authenticate(ctx context.Context) (bool, error)
	TestConnection(ctx context.Context) TestResult
	IsAuthenticated() bool
}

// TrainingProvider adapts one external training management system.
//
// Every operation degrades to an empty or false result on provider failure
// so a batch sync over many members survives one member's call failing;
// errors are logged inside the adapter, never propagated.
type TrainingProvider interface {
	Adapter
	GetMemberRecords(ctx context.Context, memberExternalID string) []StandardTrainingRecord
	GetCourseCatalog(ctx context.Context) []CourseInfo
	SyncCompletion(ctx context.Context, record StandardTrainingRecord) bool
	GetCertifications(ctx context.Context, memberExternalID string) []Certification
	EnrollMember(ctx context.Context, memberExternalID, courseID string) bool
}

// CalendarProvider adapts one external calendar system.
type CalendarProvider interface {
	Adapter
	CreateEvent(ctx context.Context, event StandardCalendarEvent) string // event id, "" on failure
	UpdateEvent(ctx context.Context, eventID string, event StandardCalendarEvent) bool
	DeleteEvent(ctx context.Context, eventID string) bool
	GetEvents(ctx context.Context, start, end time.Time) []StandardCalendarEvent
	GetEvent(ctx context.Context, eventID string) *StandardCalendarEvent
}

// DocumentStorageProvider adapts one external document store.
type DocumentStorageProvider interface {
	Adapter
	UploadFile(ctx context.Context, content []byte, filename, folder string, metadata map[string]string) string // file id, "" on failure
	DownloadFile(ctx context.Context, fileID string) []byte
	ListFiles(ctx context.Context, folder string) []FileInfo
	DeleteFile(ctx context.Context, fileID string) bool
	CreateFolder(ctx context.Context, name, parent string) string // folder id, "" on failure
	GetFileMetadata(ctx context.Context, fileID string) *FileInfo
}

// NotificationProvider adapts one external notification system.
type NotificationProvider interface {
	Adapter
	SendEmail(ctx context.Context, to []string, subject, body string, html bool) bool
	SendSMS(ctx context.Context, to []string, message string) bool
	SendPush(ctx context.Context, userIDs []string, title, message string) bool
}
