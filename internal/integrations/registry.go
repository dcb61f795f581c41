package integrations

import (
	"context"
	"fmt"
	"sync"

	"intranet/config"
	"intranet/internal/logger"
)

// ProviderTestResult is the admin-facing outcome of probing one configured
// provider.
type ProviderTestResult struct {
	Success  bool           `json:"success"`
	Provider string         `json:"provider,omitempty"`
	Error    string         `json:"error,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}

type factory func(cfg ProviderConfig) (Adapter, error)

// Registry resolves "the configured provider for a category" to a live,
// cached adapter instance. It owns the cached instances; callers borrow them
// and must not cache independently, so a config change plus ClearCache is
// enough to swap providers without touching call sites.
type Registry struct {
	mu        sync.Mutex
	factories map[Category]map[string]factory
	instances map[Category]map[string]Adapter
	conf      config.Config
	log       logger.Logger
}

func NewRegistry(conf config.Config) *Registry {
	return &Registry{
		factories: make(map[Category]map[string]factory),
		instances: make(map[Category]map[string]Adapter),
		conf:      conf,
		log:       logger.New("integrations"),
	}
}

func (r *Registry) register(category Category, name string, f factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.factories[category] == nil {
		r.factories[category] = make(map[string]factory)
	}
	// Last writer wins so tests can override a default registration.
	r.factories[category][name] = f
}

func (r *Registry) RegisterTrainingProvider(name string, f func(cfg ProviderConfig) (TrainingProvider, error)) {
	r.register(CategoryTraining, name, func(cfg ProviderConfig) (Adapter, error) { return f(cfg) })
}

func (r *Registry) RegisterCalendarProvider(name string, f func(cfg ProviderConfig) (CalendarProvider, error)) {
	r.register(CategoryCalendar, name, func(cfg ProviderConfig) (Adapter, error) { return f(cfg) })
}

func (r *Registry) RegisterDocumentStorageProvider(name string, f func(cfg ProviderConfig) (DocumentStorageProvider, error)) {
	r.register(CategoryDocumentStorage, name, func(cfg ProviderConfig) (Adapter, error) { return f(cfg) })
}

func (r *Registry) RegisterNotificationProvider(name string, f func(cfg ProviderConfig) (NotificationProvider, error)) {
	r.register(CategoryNotifications, name, func(cfg ProviderConfig) (Adapter, error) { return f(cfg) })
}

// GetTrainingProvider returns the cached or newly instantiated training
// adapter for name, resolving name (and config, unless overridden) from the
// integrations configuration when empty. Returns nil when no adapter class
// is registered under the resolved name.
func (r *Registry) GetTrainingProvider(ctx context.Context, name string, cfg ...ProviderConfig) TrainingProvider {
	adapter := r.get(ctx, CategoryTraining, name, cfg...)
	if adapter == nil {
		return nil
	}

	provider, ok := adapter.(TrainingProvider)
	if !ok {
		r.log.ErMsg("registered adapter does not implement the training capability", "name", adapter.Name())
		return nil
	}
	return provider
}

func (r *Registry) GetCalendarProvider(ctx context.Context, name string, cfg ...ProviderConfig) CalendarProvider {
	adapter := r.get(ctx, CategoryCalendar, name, cfg...)
	if adapter == nil {
		return nil
	}

	provider, ok := adapter.(CalendarProvider)
	if !ok {
		r.log.ErMsg("registered adapter does not implement the calendar capability", "name", adapter.Name())
		return nil
	}
	return provider
}

func (r *Registry) GetDocumentStorageProvider(ctx context.Context, name string, cfg ...ProviderConfig) DocumentStorageProvider {
	adapter := r.get(ctx, CategoryDocumentStorage, name, cfg...)
	if adapter == nil {
		return nil
	}

	provider, ok := adapter.(DocumentStorageProvider)
	if !ok {
		r.log.ErMsg("registered adapter does not implement the document storage capability", "name", adapter.Name())
		return nil
	}
	return provider
}

func (r *Registry) GetNotificationProvider(ctx context.Context, name string, cfg ...ProviderConfig) NotificationProvider {
	adapter := r.get(ctx, CategoryNotifications, name, cfg...)
	if adapter == nil {
		return nil
	}

	provider, ok := adapter.(NotificationProvider)
	if !ok {
		r.log.ErMsg("registered adapter does not implement the notification capability", "name", adapter.Name())
		return nil
	}
	return provider
}

func (r *Registry) get(ctx context.Context, category Category, name string, cfgOverride ...ProviderConfig) Adapter {
	log := r.log.Function("get")

	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		name = r.conf.Integrations[string(category)].Provider
	}
	if name == "" {
		log.Debug("no provider configured", "category", category)
		return nil
	}

	if instance, ok := r.instances[category][name]; ok {
		return instance
	}

	f, ok := r.factories[category][name]
	if !ok {
		log.Warn("no adapter registered for provider", "category", category, "provider", name)
		return nil
	}

	cfg := ProviderConfig(r.conf.Integrations[string(category)].Config)
	if len(cfgOverride) > 0 {
		cfg = cfgOverride[0]
	}

	instance, err := f(cfg)
	if err != nil {
		log.Er("failed to instantiate provider adapter", err, "category", category, "provider", name)
		return nil
	}

	// Authentication failure is not fatal: some operations work
	// unauthenticated, and the instance stays usable for later attempts.
	if ok, err := instance.Authenticate(ctx); err != nil {
		log.Er("provider authentication impossible", err, "category", category, "provider", name)
	} else if !ok {
		log.Warn("provider authentication failed", "category", category, "provider", name)
	}

	if r.instances[category] == nil {
		r.instances[category] = make(map[string]Adapter)
	}
	r.instances[category][name] = instance

	return instance
}

// TestProvider probes the named (or configured) provider of a category. An
// unknown category or unconfigured provider is reported in the result, never
// raised.
func (r *Registry) TestProvider(ctx context.Context, category Category, name string) ProviderTestResult {
	switch category {
	case CategoryTraining, CategoryCalendar, CategoryDocumentStorage, CategoryNotifications:
	default:
		return ProviderTestResult{
			Success: false,
			Error:   fmt.Sprintf("unknown integration category: %s", category),
		}
	}

	adapter := r.get(ctx, category, name)
	if adapter == nil {
		return ProviderTestResult{
			Success: false,
			Error:   fmt.Sprintf("no provider configured for category: %s", category),
		}
	}

	result := adapter.TestConnection(ctx)
	return ProviderTestResult{
		Success:  result.Connected,
		Provider: result.Provider,
		Error:    result.Error,
		Detail:   result.Detail,
	}
}

// ClearCache drops all cached adapter instances. Registrations survive, so
// the next get re-instantiates and re-authenticates from current config.
func (r *Registry) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances = make(map[Category]map[string]Adapter)
}

// SetConfig swaps the integrations configuration used for name/config
// resolution. Callers should follow with ClearCache.
func (r *Registry) SetConfig(conf config.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conf = conf
}
