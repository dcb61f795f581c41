package sendgridnotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"intranet/internal/integrations"
	"intranet/internal/logger"
)

const ProviderName = "sendgrid"

const defaultHost = "https://api.sendgrid.com"

// Adapter implements the notification capability via SendGrid. Only email is
// supported; SMS and push report failure. Config keys: api_key, from_email,
// from_name, host (optional, for tests).
type Adapter struct {
	apiKey        string
	from          *sgmail.Email
	host          string
	authenticated bool
	log           logger.Logger
}

var _ integrations.NotificationProvider = (*Adapter)(nil)

func New(cfg integrations.ProviderConfig) (integrations.NotificationProvider, error) {
	host := cfg["host"]
	if host == "" {
		host = defaultHost
	}

	fromName := cfg["from_name"]
	if fromName == "" {
		fromName = "Intranet"
	}

	return &Adapter{
		apiKey: cfg["api_key"],
		from:   sgmail.NewEmail(fromName, cfg["from_email"]),
		host:   host,
		log:    logger.New("sendgridNotify"),
	}, nil
}

func (a *Adapter) Name() string {
	return ProviderName
}

func (a *Adapter) Authenticate(ctx context.Context) (bool, error) {
	log := a.log.Function("Authenticate")

	if a.apiKey == "" {
		return false, errors.New("sendgrid: api_key is not configured")
	}

	if err := a.probe(ctx); err != nil {
		log.Warn("authentication failed", "error", err)
		a.authenticated = false
		return false, nil
	}

	a.authenticated = true
	return true, nil
}

func (a *Adapter) TestConnection(ctx context.Context) integrations.TestResult {
	if a.apiKey == "" {
		return integrations.TestResult{
			Connected: false,
			Provider:  ProviderName,
			Error:     "API key not configured",
		}
	}

	if err := a.probe(ctx); err != nil {
		return integrations.TestResult{
			Connected: false,
			Provider:  ProviderName,
			Error:     err.Error(),
		}
	}

	return integrations.TestResult{
		Connected: true,
		Provider:  ProviderName,
	}
}

func (a *Adapter) IsAuthenticated() bool {
	return a.authenticated
}

func (a *Adapter) SendEmail(ctx context.Context, to []string, subject, body string, html bool) bool {
	log := a.log.Function("SendEmail")

	if len(to) == 0 {
		log.Warn("no recipients, dropping email", "subject", subject)
		return false
	}

	personalization := sgmail.NewPersonalization()
	personalization.Subject = subject
	for _, addr := range to {
		personalization.AddTos(sgmail.NewEmail("", addr))
	}

	message := sgmail.NewV3Mail()
	message.SetFrom(a.from)
	message.AddPersonalizations(personalization)

	contentType := "text/plain"
	if html {
		contentType = "text/html"
	}
	message.AddContent(sgmail.NewContent(contentType, body))

	req := sendgrid.GetRequest(a.apiKey, "/v3/mail/send", a.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		log.Er("failed to send email", err, "subject", subject)
		return false
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.ErMsg("email rejected by provider", "subject", subject, "status", resp.StatusCode)
		return false
	}

	return true
}

func (a *Adapter) SendSMS(ctx context.Context, to []string, message string) bool {
	a.log.Function("SendSMS").Warn("SMS is not supported by the sendgrid provider")
	return false
}

func (a *Adapter) SendPush(ctx context.Context, userIDs []string, title, message string) bool {
	a.log.Function("SendPush").Warn("push notifications are not supported by the sendgrid provider")
	return false
}

// probe is a cheap read-only call that verifies the API key works.
func (a *Adapter) probe(ctx context.Context) error {
	req := sendgrid.GetRequest(a.apiKey, "/v3/scopes", a.host)
	req.Method = http.MethodGet

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid probe failed: status=%d", resp.StatusCode)
	}

	return nil
}
