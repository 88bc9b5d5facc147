// Package form implements the registration form: field state, validation,
// the password strength meter and the submission state machine.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ctchen222/signup-form/internal/transport"
	"ctchen222/signup-form/internal/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("form")
	meter  = otel.Meter("form")
)

const (
	DefaultEndpoint = "/api/register"
	DefaultAction   = "register"

	HeaderRecaptchaToken = "X-ReCaptcha-Token"
)

// ErrUnknownField is returned by UpdateField for a field the form does not have.
var ErrUnknownField = errors.New("unknown form field")

// Payload is the JSON body sent on submit.
type Payload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
}

type fieldState struct {
	value   string
	touched bool
	result  validation.Result
}

// Controller holds the state of one registration form.
//
// A Controller is driven from a single goroutine. It takes no locks: callers
// keep Submit from overlapping by checking CanSubmit before calling it.
type Controller struct {
	tokens    TokenProvider
	transport Transport
	clock     func() time.Time
	logger    *slog.Logger
	endpoint  string
	action    string

	fields     map[Field]*fieldState
	score      int
	submitting bool
	status     Status
	message    string
	err        error

	submissions metric.Int64Counter
	duration    metric.Float64Histogram
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock sets the clock used for the age check.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithEndpoint overrides the submission path.
func WithEndpoint(path string) Option {
	return func(c *Controller) { c.endpoint = path }
}

// WithAction overrides the action name passed to the TokenProvider.
func WithAction(action string) Option {
	return func(c *Controller) { c.action = action }
}

// New creates a Controller with every field empty and evaluated.
func New(tokens TokenProvider, tr Transport, opts ...Option) *Controller {
	c := &Controller{
		tokens:    tokens,
		transport: tr,
		clock:     time.Now,
		logger:    slog.Default(),
		endpoint:  DefaultEndpoint,
		action:    DefaultAction,
		fields:    make(map[Field]*fieldState, len(Fields)),
		status:    Idle,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, f := range Fields {
		c.fields[f] = &fieldState{result: c.evaluate(f, "")}
	}

	var err error
	if c.submissions, err = meter.Int64Counter("signup.submissions",
		metric.WithDescription("Registration submissions by outcome")); err != nil {
		c.logger.Warn("failed to create submissions counter", "error", err)
	}
	if c.duration, err = meter.Float64Histogram("signup.submit.duration",
		metric.WithDescription("Time spent in Submit"), metric.WithUnit("s")); err != nil {
		c.logger.Warn("failed to create submit duration histogram", "error", err)
	}

	return c
}

// UpdateField stores value and re-validates the field.
func (c *Controller) UpdateField(field Field, value string) error {
	fs, ok := c.fields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	fs.value = value
	fs.touched = true
	fs.result = c.evaluate(field, value)
	if field == FieldPassword {
		c.score = validation.ScorePassword(value)
	}
	return nil
}

func (c *Controller) evaluate(field Field, value string) validation.Result {
	switch field {
	case FieldEmail:
		return validation.ValidateEmail(value)
	case FieldDOB:
		return validation.ValidateAge(value, c.clock())
	case FieldPassword:
		return validation.EvaluatePassword(value)
	}
	return nil
}

// Value returns the stored value of field.
func (c *Controller) Value(field Field) string {
	if fs, ok := c.fields[field]; ok {
		return fs.value
	}
	return ""
}

// FieldResult returns the latest validation result for field.
func (c *Controller) FieldResult(field Field) validation.Result {
	if fs, ok := c.fields[field]; ok {
		return fs.result
	}
	return nil
}

// FieldError returns the inline message for a touched, invalid field.
func (c *Controller) FieldError(field Field) string {
	fs, ok := c.fields[field]
	if !ok || !fs.touched || fs.result.Valid() {
		return ""
	}

	switch field {
	case FieldEmail:
		return MsgInvalidEmail
	case FieldDOB:
		if fs.result.Has(validation.RuleRequired) {
			return MsgDOBRequired
		}
		return MsgUnderage
	case FieldPassword:
		return MsgWeakPassword
	}
	return ""
}

// Score is the advisory password strength, 0 to 3.
func (c *Controller) Score() int { return c.score }

// AggregateValid reports whether every field is valid.
func (c *Controller) AggregateValid() bool {
	for _, fs := range c.fields {
		if !fs.result.Valid() {
			return false
		}
	}
	return true
}

// CanSubmit reports whether the submit control should be enabled.
func (c *Controller) CanSubmit() bool {
	return c.AggregateValid() && !c.submitting
}

// Submitting is true while a Submit call is in flight.
func (c *Controller) Submitting() bool { return c.submitting }

// Status returns the submission state.
func (c *Controller) Status() Status { return c.status }

// Message returns the user-facing result of the last submit.
func (c *Controller) Message() string { return c.message }

// Err returns the token or transport error behind the last failed submit.
func (c *Controller) Err() error { return c.err }

// Submit sends the form when every field is valid and does nothing otherwise.
// All failures end up in Status, Message and Err; none are returned.
func (c *Controller) Submit(ctx context.Context) {
	if !c.AggregateValid() {
		c.logger.DebugContext(ctx, "submit ignored, form invalid")
		return
	}

	ctx, span := tracer.Start(ctx, "form.Submit", trace.WithAttributes(
		attribute.String("form.action", c.action),
		attribute.String("form.endpoint", c.endpoint),
	))
	defer span.End()

	start := time.Now()
	c.submitting = true
	c.status = Submitting
	c.message = ""
	c.err = nil
	defer func() {
		c.submitting = false
		c.record(ctx, start)
	}()

	resp, err := c.send(ctx)
	if err != nil {
		c.fail(ctx, span, err)
		return
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if !resp.OK() {
		c.status = Failed
		c.message = MsgFailedPrefix + resp.Body
		span.SetStatus(codes.Error, "Registration rejected")
		c.logger.WarnContext(ctx, "registration rejected", "status", resp.StatusCode)
		return
	}

	c.status = Succeeded
	c.message = MsgSubmitted
	c.logger.InfoContext(ctx, "registration submitted", "status", resp.StatusCode)
}

// send acquires the token, then issues the request.
func (c *Controller) send(ctx context.Context) (*transport.Response, error) {
	token, err := c.tokens.Execute(ctx, c.action)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(Payload{
		Email:    c.Value(FieldEmail),
		Password: c.Value(FieldPassword),
		DOB:      c.Value(FieldDOB),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	header := http.Header{}
	header.Set(transport.HeaderContentType, "application/json")
	header.Set(HeaderRecaptchaToken, token)

	return c.transport.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   c.endpoint,
		Header: header,
		Body:   body,
	})
}

func (c *Controller) fail(ctx context.Context, span trace.Span, err error) {
	c.status = Failed
	c.err = err
	c.message = MsgNetworkPrefix + err.Error()
	span.RecordError(err)
	span.SetStatus(codes.Error, "Submission failed")
	c.logger.ErrorContext(ctx, "registration submit failed", "error", err)
}

func (c *Controller) record(ctx context.Context, start time.Time) {
	outcome := attribute.String("outcome", c.status.String())
	if c.submissions != nil {
		c.submissions.Add(ctx, 1, metric.WithAttributes(outcome))
	}
	if c.duration != nil {
		c.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(outcome))
	}
}
