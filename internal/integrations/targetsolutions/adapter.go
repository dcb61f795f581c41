package targetsolutions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"intranet/internal/integrations"
	"intranet/internal/logger"
)

const ProviderName = "target_solutions"

const defaultTimeout = 30 * time.Second

// Adapter implements the training capability against the Target Solutions
// REST API. Config keys: base_url, api_key, timeout_seconds (optional).
type Adapter struct {
	baseURL       string
	apiKey        string
	client        *http.Client
	authenticated bool
	log           logger.Logger
}

var _ integrations.TrainingProvider = (*Adapter)(nil)

func New(cfg integrations.ProviderConfig) (integrations.TrainingProvider, error) {
	timeout := defaultTimeout
	if v := cfg["timeout_seconds"]; v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			timeout = time.Duration(seconds) * time.Second
		}
	}

	return &Adapter{
		baseURL: strings.TrimRight(cfg["base_url"], "/"),
		apiKey:  cfg["api_key"],
		client:  &http.Client{Timeout: timeout},
		log:     logger.New("targetSolutions"),
	}, nil
}

func (a *Adapter) Name() string {
	return ProviderName
}

func (a *Adapter) Authenticate(ctx context.Context) (bool, error) {
	log := a.log.Function("Authenticate")

	if a.baseURL == "" {
		return false, errors.New("target_solutions: base_url is not configured")
	}
	if a.apiKey == "" {
		return false, errors.New("target_solutions: api_key is not configured")
	}

	if _, err := a.makeRequest(ctx, http.MethodGet, "api/v1/auth/verify", nil, nil); err != nil {
		log.Warn("authentication failed", "error", err)
		a.authenticated = false
		return false, nil
	}

	a.authenticated = true
	return true, nil
}

func (a *Adapter) TestConnection(ctx context.Context) integrations.TestResult {
	if a.baseURL == "" {
		return integrations.TestResult{
			Connected: false,
			Provider:  ProviderName,
			Error:     "base URL not configured",
		}
	}

	resp, err := a.makeRequest(ctx, http.MethodGet, "api/v1/status", nil, nil)
	if err != nil {
		return integrations.TestResult{
			Connected: false,
			Provider:  ProviderName,
			Error:     err.Error(),
		}
	}

	return integrations.TestResult{
		Connected: true,
		Provider:  ProviderName,
		Detail:    resp,
	}
}

func (a *Adapter) IsAuthenticated() bool {
	return a.authenticated
}

func (a *Adapter) GetMemberRecords(ctx context.Context, memberExternalID string) []integrations.StandardTrainingRecord {
	log := a.log.Function("GetMemberRecords")

	endpoint := fmt.Sprintf("api/v1/users/%s/completions", url.PathEscape(memberExternalID))
	resp, err := a.makeRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		log.Er("failed to fetch member completions", err, "memberExternalID", memberExternalID)
		return nil
	}

	natives, _ := resp["completions"].([]any)
	records := make([]integrations.StandardTrainingRecord, 0, len(natives))
	for _, entry := range natives {
		native, ok := entry.(map[string]any)
		if !ok {
			log.Warn("skipping non-object completion entry", "memberExternalID", memberExternalID)
			continue
		}

		record, err := a.normalizeRecord(native, memberExternalID)
		if err != nil {
			// One malformed record must not abort the whole fetch.
			log.Warn("skipping malformed completion record", "memberExternalID", memberExternalID, "error", err)
			continue
		}
		records = append(records, record)
	}

	return records
}

func (a *Adapter) GetCourseCatalog(ctx context.Context) []integrations.CourseInfo {
	log := a.log.Function("GetCourseCatalog")

	query := url.Values{"active": {"true"}}
	resp, err := a.makeRequest(ctx, http.MethodGet, "api/v1/courses", nil, query)
	if err != nil {
		log.Er("failed to fetch course catalog", err)
		return nil
	}

	natives, _ := resp["courses"].([]any)
	courses := make([]integrations.CourseInfo, 0, len(natives))
	for _, entry := range natives {
		native, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		courses = append(courses, integrations.CourseInfo{
			ID:       stringValue(native, "id"),
			Name:     firstString(native, "name", "title"),
			Category: stringValue(native, "category"),
			Hours:    floatOrZero(native, "hours"),
			Active:   boolOrDefault(native, "active", true),
		})
	}

	return courses
}

func (a *Adapter) SyncCompletion(ctx context.Context, record integrations.StandardTrainingRecord) bool {
	log := a.log.Function("SyncCompletion")

	body := map[string]any{
		"course_id": record.CourseID,
	}
	if record.CompletionDate != nil {
		body["completion_date"] = record.CompletionDate.Format("2006-01-02")
	}
	if record.Score != nil {
		body["score"] = *record.Score
	}
	if record.CertificateID != "" {
		body["certificate_id"] = record.CertificateID
	}

	endpoint := fmt.Sprintf("api/v1/users/%s/completions", url.PathEscape(record.MemberID))
	if _, err := a.makeRequest(ctx, http.MethodPost, endpoint, body, nil); err != nil {
		log.Er("failed to push completion", err, "memberId", record.MemberID, "courseId", record.CourseID)
		return false
	}

	return true
}

func (a *Adapter) GetCertifications(ctx context.Context, memberExternalID string) []integrations.Certification {
	log := a.log.Function("GetCertifications")

	endpoint := fmt.Sprintf("api/v1/users/%s/certifications", url.PathEscape(memberExternalID))
	resp, err := a.makeRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		log.Er("failed to fetch certifications", err, "memberExternalID", memberExternalID)
		return nil
	}

	natives, _ := resp["certifications"].([]any)
	certifications := make([]integrations.Certification, 0, len(natives))
	for _, entry := range natives {
		native, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		certifications = append(certifications, integrations.Certification{
			ID:             stringValue(native, "id"),
			Type:           stringValue(native, "certification_type"),
			Number:         stringValue(native, "certification_number"),
			IssueDate:      parseTimestamp(native["issue_date"]),
			ExpirationDate: parseTimestamp(native["expiration_date"]),
		})
	}

	return certifications
}

func (a *Adapter) EnrollMember(ctx context.Context, memberExternalID, courseID string) bool {
	log := a.log.Function("EnrollMember")

	body := map[string]any{
		"user_id":   memberExternalID,
		"course_id": courseID,
	}
	if _, err := a.makeRequest(ctx, http.MethodPost, "api/v1/assignments", body, nil); err != nil {
		log.Er("failed to enroll member", err, "memberExternalID", memberExternalID, "courseId", courseID)
		return false
	}

	return true
}

// makeRequest centralizes outbound calls: bearer auth, JSON encode/decode,
// the request-level timeout configured on the client. Transport and HTTP
// errors come back as errors for the caller to log and degrade on; an
// unsupported method is a bug in the calling code.
func (a *Adapter) makeRequest(ctx context.Context, method, endpoint string, body any, query url.Values) (map[string]any, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	requestURL := a.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", endpoint, err)
	}

	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("request to %s failed: status=%d", endpoint, resp.StatusCode)
	}

	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid JSON response from %s: %w", endpoint, err)
	}

	return out, nil
}

// normalizeRecord maps one native completion record to the standard shape.
// A record without a provider id is unusable for upsert keying and is
// rejected; anything else parses defensively.
func (a *Adapter) normalizeRecord(native map[string]any, memberID string) (integrations.StandardTrainingRecord, error) {
	recordID := stringValue(native, "id")
	if recordID == "" {
		return integrations.StandardTrainingRecord{}, errors.New("completion record has no id")
	}

	expiration := parseTimestamp(native["expires_at"])
	reported := integrations.TrainingStatus(stringValue(native, "status"))

	record := integrations.StandardTrainingRecord{
		MemberID:         memberID,
		CourseName:       firstString(native, "course_title", "course_name"),
		CourseID:         stringValue(native, "course_id"),
		CompletionDate:   parseTimestamp(native["completed_at"]),
		ExpirationDate:   expiration,
		Score:            floatValue(native, "score"),
		Status:           integrations.DeriveStatus(reported, expiration, time.Now().UTC()),
		CertificateID:    stringValue(native, "certificate_id"),
		Instructor:       stringValue(native, "instructor"),
		Provider:         ProviderName,
		ProviderRecordID: recordID,
	}

	if hours := floatValue(native, "hours"); hours != nil {
		record.Metadata = map[string]any{"hours": *hours}
	}

	return record, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimestamp parses provider date strings defensively: a malformed or
// absent value yields nil rather than an error.
func parseTimestamp(v any) *time.Time {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

func stringValue(native map[string]any, key string) string {
	switch v := native[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func firstString(native map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := stringValue(native, key); v != "" {
			return v
		}
	}
	return ""
}

func floatValue(native map[string]any, key string) *float64 {
	switch v := native[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func floatOrZero(native map[string]any, key string) float64 {
	if v := floatValue(native, key); v != nil {
		return *v
	}
	return 0
}

func boolOrDefault(native map[string]any, key string, fallback bool) bool {
	if v, ok := native[key].(bool); ok {
		return v
	}
	return fallback
}
