package targetsolutions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intranet/internal/integrations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) (*Adapter, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := New(integrations.ProviderConfig{
		"base_url": server.URL,
		"api_key":  "test-key",
	})
	require.NoError(t, err)

	return provider.(*Adapter), server
}

func TestAuthenticate(t *testing.T) {
	t.Run("Missing base URL is a config error", func(t *testing.T) {
		provider, err := New(integrations.ProviderConfig{"api_key": "k"})
		require.NoError(t, err)

		ok, err := provider.Authenticate(context.Background())
		assert.False(t, ok)
		assert.Error(t, err)
	})

	t.Run("Missing API key is a config error", func(t *testing.T) {
		provider, err := New(integrations.ProviderConfig{"base_url": "http://example.com"})
		require.NoError(t, err)

		ok, err := provider.Authenticate(context.Background())
		assert.False(t, ok)
		assert.Error(t, err)
	})

	t.Run("Rejected credentials are not an error", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		ok, err := adapter.Authenticate(context.Background())
		assert.False(t, ok)
		assert.NoError(t, err)
		assert.False(t, adapter.IsAuthenticated())
	})

	t.Run("Successful verification", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/auth/verify", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]any{"valid": true})
		})

		ok, err := adapter.Authenticate(context.Background())
		assert.True(t, ok)
		assert.NoError(t, err)
		assert.True(t, adapter.IsAuthenticated())
	})
}

func TestTestConnection(t *testing.T) {
	t.Run("Reachable provider", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/status", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		})

		result := adapter.TestConnection(context.Background())
		assert.True(t, result.Connected)
		assert.Equal(t, ProviderName, result.Provider)
		assert.Equal(t, "ok", result.Detail["status"])
	})

	t.Run("Unreachable provider reports false not panic", func(t *testing.T) {
		provider, err := New(integrations.ProviderConfig{
			"base_url": "http://127.0.0.1:1",
			"api_key":  "k",
		})
		require.NoError(t, err)

		result := provider.TestConnection(context.Background())
		assert.False(t, result.Connected)
		assert.NotEmpty(t, result.Error)
	})

	t.Run("Missing base URL", func(t *testing.T) {
		provider, err := New(integrations.ProviderConfig{"api_key": "k"})
		require.NoError(t, err)

		result := provider.TestConnection(context.Background())
		assert.False(t, result.Connected)
	})
}

func TestGetMemberRecords(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/ts-101/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"completions": []map[string]any{
				{
					"id":             12345,
					"course_title":   "CPR Certification",
					"course_id":      "cpr-101",
					"completed_at":   "2025-01-15",
					"expires_at":     "2027-01-15",
					"score":          95.5,
					"status":         "completed",
					"certificate_id": "cert-9",
					"instructor":     "J. Smith",
					"hours":          4.0,
				},
				{
					// No id: unusable for upsert keying, must be skipped.
					"course_title": "Orphan Course",
				},
				{
					"id":           "67890",
					"course_name":  "Hazmat Awareness",
					"completed_at": "not-a-date",
				},
			},
		})
	})

	records := adapter.GetMemberRecords(context.Background(), "ts-101")
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "ts-101", first.MemberID)
	assert.Equal(t, "12345", first.ProviderRecordID)
	assert.Equal(t, "CPR Certification", first.CourseName)
	assert.Equal(t, "cpr-101", first.CourseID)
	assert.Equal(t, ProviderName, first.Provider)
	assert.Equal(t, integrations.StatusCompleted, first.Status)
	require.NotNil(t, first.Score)
	assert.Equal(t, 95.5, *first.Score)
	require.NotNil(t, first.CompletionDate)
	assert.Equal(t, 2025, first.CompletionDate.Year())
	assert.Equal(t, "cert-9", first.CertificateID)
	assert.Equal(t, map[string]any{"hours": 4.0}, first.Metadata)

	second := records[1]
	assert.Equal(t, "67890", second.ProviderRecordID)
	assert.Equal(t, "Hazmat Awareness", second.CourseName, "course_name is the fallback title key")
	assert.Nil(t, second.CompletionDate, "malformed dates parse to nil")
	assert.Nil(t, second.Score)
}

func TestGetMemberRecordsDerivesExpired(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"completions": []map[string]any{
				{
					"id":           "1",
					"course_title": "CPR",
					"completed_at": "2020-01-15",
					"expires_at":   "2022-01-15",
					"status":       "completed",
				},
			},
		})
	})

	records := adapter.GetMemberRecords(context.Background(), "ts-101")
	require.Len(t, records, 1)
	assert.Equal(t, integrations.StatusExpired, records[0].Status,
		"a past expiration overrides the provider's completed status")
}

func TestGetMemberRecordsProviderFailure(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Empty(t, adapter.GetMemberRecords(context.Background(), "ts-101"))
}

func TestGetCourseCatalog(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/courses", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		json.NewEncoder(w).Encode(map[string]any{
			"courses": []map[string]any{
				{"id": "cpr-101", "name": "CPR", "category": "medical", "hours": 4.0, "active": true},
				{"id": "hazmat-100", "title": "Hazmat Awareness"},
			},
		})
	})

	courses := adapter.GetCourseCatalog(context.Background())
	require.Len(t, courses, 2)
	assert.Equal(t, "CPR", courses[0].Name)
	assert.Equal(t, 4.0, courses[0].Hours)
	assert.Equal(t, "Hazmat Awareness", courses[1].Name)
	assert.True(t, courses[1].Active, "active defaults to true when absent")
}

func TestSyncCompletion(t *testing.T) {
	completion := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	score := 88.0

	var received map[string]any
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/ts-101/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	})

	ok := adapter.SyncCompletion(context.Background(), integrations.StandardTrainingRecord{
		MemberID:       "ts-101",
		CourseID:       "cpr-101",
		CompletionDate: &completion,
		Score:          &score,
	})

	assert.True(t, ok)
	assert.Equal(t, "cpr-101", received["course_id"])
	assert.Equal(t, "2025-03-01", received["completion_date"])
	assert.Equal(t, 88.0, received["score"])
}

func TestEnrollMember(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/assignments", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		})

		assert.True(t, adapter.EnrollMember(context.Background(), "ts-101", "cpr-101"))
	})

	t.Run("Provider rejection degrades to false", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		assert.False(t, adapter.EnrollMember(context.Background(), "ts-101", "cpr-101"))
	})
}

func TestGetCertifications(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/ts-101/certifications", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"certifications": []map[string]any{
				{
					"id":                   "c-1",
					"certification_type":   "EMT",
					"certification_number": "EMT-442",
					"issue_date":           "2024-05-01",
					"expiration_date":      "2026-05-01",
				},
			},
		})
	})

	certifications := adapter.GetCertifications(context.Background(), "ts-101")
	require.Len(t, certifications, 1)
	assert.Equal(t, "EMT", certifications[0].Type)
	assert.Equal(t, "EMT-442", certifications[0].Number)
	require.NotNil(t, certifications[0].ExpirationDate)
	assert.Equal(t, 2026, certifications[0].ExpirationDate.Year())
}

func TestMakeRequestRejectsUnsupportedMethod(t *testing.T) {
	adapter, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := adapter.makeRequest(context.Background(), "PATCH", "api/v1/status", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported HTTP method")
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected *time.Time
	}{
		{
			name:     "RFC3339",
			input:    "2025-01-15T10:30:00Z",
			expected: timePtr(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:     "Datetime without zone",
			input:    "2025-01-15T10:30:00",
			expected: timePtr(time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:     "Date only",
			input:    "2025-01-15",
			expected: timePtr(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "Garbage",
			input:    "next tuesday",
			expected: nil,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "Non-string",
			input:    12345.0,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseTimestamp(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.True(t, tt.expected.Equal(*result))
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
