// Package usecase turns platform events into outbound email: verification
// codes and vote receipts.
package usecase

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/trace"

	"github.com/VENUHARGI/OnlineVoting/internal/pkg/clock"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/config"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/instrument"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/mail"
	"github.com/VENUHARGI/OnlineVoting/internal/pkg/validator"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoMail  repoMail
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoMail   repoMail
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

// sendWithRetry delivers the message, retrying transient provider failures
// with a capped fibonacci backoff. SMTP outages are common enough that one
// failed dial must not drop a voter's code.
func (s *Usecase) sendWithRetry(ctx context.Context, msg mail.Message) error {
	b := retry.WithCappedDuration(5*time.Second, retry.NewFibonacci(500*time.Millisecond))
	b = retry.WithMaxRetries(s.sendMaxRetries(), b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (s *Usecase) sendMaxRetries() uint64 {
	if n := s.cfg.GetInt64("modules.notification.send_max_retries"); n > 0 {
		return uint64(n)
	}
	return 3
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Usecase) baseEmailTemplateData() map[string]any {
	return map[string]any{
		"support_email": s.cfg.GetString("modules.notification.support_email"),
		"platform_name": "OnlineVoting",
		"year":          s.clock.Now().Format("2006"),
	}
}
