package integrations

import (
	"context"
	"testing"
	"time"

	"intranet/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTrainingAdapter records how it was built and what was called on it.
type fakeTrainingAdapter struct {
	name          string
	cfg           ProviderConfig
	authCalls     int
	authenticated bool
}

func (f *fakeTrainingAdapter) Name() string { return f.name }

func (f *fakeTrainingAdapter) Authenticate(ctx context.Context) (bool, error) {
	f.authCalls++
	f.authenticated = true
	return true, nil
}

func (f *fakeTrainingAdapter) TestConnection(ctx context.Context) TestResult {
	return TestResult{Connected: true, Provider: f.name}
}

func (f *fakeTrainingAdapter) IsAuthenticated() bool { return f.authenticated }

func (f *fakeTrainingAdapter) GetMemberRecords(ctx context.Context, memberExternalID string) []StandardTrainingRecord {
	return nil
}
func (f *fakeTrainingAdapter) GetCourseCatalog(ctx context.Context) []CourseInfo { return nil }
func (f *fakeTrainingAdapter) SyncCompletion(ctx context.Context, record StandardTrainingRecord) bool {
	return false
}
func (f *fakeTrainingAdapter) GetCertifications(ctx context.Context, memberExternalID string) []Certification {
	return nil
}
func (f *fakeTrainingAdapter) EnrollMember(ctx context.Context, memberExternalID, courseID string) bool {
	return false
}

func testConfig(provider string) config.Config {
	return config.Config{
		Integrations: map[string]config.Integration{
			"training": {
				Provider: provider,
				Config:   map[string]string{"api_key": "test-key"},
			},
		},
	}
}

func TestRegistryCachesInstances(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	built := 0
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		built++
		return &fakeTrainingAdapter{name: "fake", cfg: cfg}, nil
	})

	first := registry.GetTrainingProvider(context.Background(), "")
	require.NotNil(t, first)
	second := registry.GetTrainingProvider(context.Background(), "")
	require.NotNil(t, second)

	assert.Same(t, first, second, "repeated lookups should return the cached instance")
	assert.Equal(t, 1, built, "factory should run once")
	assert.Equal(t, 1, first.(*fakeTrainingAdapter).authCalls, "authenticate should run once")
}

func TestRegistryConfigResolution(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	var received ProviderConfig
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		received = cfg
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	require.NotNil(t, registry.GetTrainingProvider(context.Background(), "fake"))
	assert.Equal(t, "test-key", received["api_key"], "config should come from the integrations section")
}

func TestRegistryConfigOverride(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	var received ProviderConfig
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		received = cfg
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	override := ProviderConfig{"api_key": "override-key"}
	require.NotNil(t, registry.GetTrainingProvider(context.Background(), "fake", override))
	assert.Equal(t, "override-key", received["api_key"])
}

func TestRegistryClearCacheReinstantiates(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	built := 0
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		built++
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	first := registry.GetTrainingProvider(context.Background(), "")
	require.NotNil(t, first)

	registry.ClearCache()

	second := registry.GetTrainingProvider(context.Background(), "")
	require.NotNil(t, second)

	assert.NotSame(t, first, second, "cleared cache should force a fresh instance")
	assert.Equal(t, 2, built, "registration must survive ClearCache")
}

func TestRegistryUnregisteredProvider(t *testing.T) {
	registry := NewRegistry(testConfig("missing"))

	assert.Nil(t, registry.GetTrainingProvider(context.Background(), ""))
	assert.Nil(t, registry.GetTrainingProvider(context.Background(), "also-missing"))
}

func TestRegistryNoProviderConfigured(t *testing.T) {
	registry := NewRegistry(config.Config{})

	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	assert.Nil(t, registry.GetTrainingProvider(context.Background(), ""),
		"empty name with no configured provider should resolve to nothing")
}

func TestRegistryLastRegistrationWins(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		return &fakeTrainingAdapter{name: "original"}, nil
	})
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		return &fakeTrainingAdapter{name: "replacement"}, nil
	})

	provider := registry.GetTrainingProvider(context.Background(), "fake")
	require.NotNil(t, provider)
	assert.Equal(t, "replacement", provider.Name())
}

func TestRegistryCategoriesAreIndependent(t *testing.T) {
	registry := NewRegistry(testConfig("fake"))

	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	assert.NotNil(t, registry.GetTrainingProvider(context.Background(), "fake"))
	assert.Nil(t, registry.GetCalendarProvider(context.Background(), "fake"),
		"a training registration must not leak into the calendar category")
}

func TestTestProvider(t *testing.T) {
	t.Run("Unknown category is rejected", func(t *testing.T) {
		registry := NewRegistry(testConfig("fake"))

		result := registry.TestProvider(context.Background(), Category("bogus"), "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "unknown integration category")
	})

	t.Run("Unconfigured category reports failure", func(t *testing.T) {
		registry := NewRegistry(config.Config{})

		result := registry.TestProvider(context.Background(), CategoryCalendar, "")
		assert.False(t, result.Success)
		assert.Contains(t, result.Error, "no provider configured")
	})

	t.Run("Configured provider is probed", func(t *testing.T) {
		registry := NewRegistry(testConfig("fake"))
		registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
			return &fakeTrainingAdapter{name: "fake"}, nil
		})

		result := registry.TestProvider(context.Background(), CategoryTraining, "")
		assert.True(t, result.Success)
		assert.Equal(t, "fake", result.Provider)
	})
}

func TestRegistrySetConfig(t *testing.T) {
	registry := NewRegistry(config.Config{})
	registry.RegisterTrainingProvider("fake", func(cfg ProviderConfig) (TrainingProvider, error) {
		return &fakeTrainingAdapter{name: "fake"}, nil
	})

	require.Nil(t, registry.GetTrainingProvider(context.Background(), ""))

	registry.SetConfig(testConfig("fake"))
	registry.ClearCache()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NotNil(t, registry.GetTrainingProvider(ctx, ""))
}
