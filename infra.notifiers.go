package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Supported notifier kinds.
const (
	EmailNotifierKind = "email"
	SMSNotifierKind   = "sms"
)

// ErrUnknownNotifier is returned for a notifier kind other than email or sms.
var ErrUnknownNotifier = errors.New("unknown notifier kind")

var (
	_ Notifier = (*EmailNotifier)(nil) // ensure EmailNotifier implements Notifier.
	_ Notifier = (*SMSNotifier)(nil)   // ensure SMSNotifier implements Notifier.
)

// Notifier reports the outcome of library operations. Delivery is best-effort.
type Notifier interface {
	SendSuccess(message string)
	SendFailure(message string)
}

// EmailNotifier formats notifications as email-style lines.
type EmailNotifier struct {
	logger *zap.Logger
	out    io.Writer
}

func NewEmailNotifier(logger *zap.Logger, out io.Writer) *EmailNotifier {
	return &EmailNotifier{logger: logger, out: out}
}

func (en *EmailNotifier) SendSuccess(message string) {
	en.send("success", fmt.Sprintf("Email: [SUCCESS] %s\n", message))
}

func (en *EmailNotifier) SendFailure(message string) {
	en.send("failure", fmt.Sprintf("Email: [FAILURE] %s\n", message))
}

func (en *EmailNotifier) send(outcome, line string) {
	en.logger.Debug("notifier: sending", zap.String("kind", EmailNotifierKind), zap.String("outcome", outcome))
	if _, err := io.WriteString(en.out, line); err != nil {
		en.logger.Error("notifier: failed to write notification", zap.String("kind", EmailNotifierKind), zap.Error(err))
	}
}

// SMSNotifier formats notifications as short sms-style lines.
type SMSNotifier struct {
	logger *zap.Logger
	out    io.Writer
}

func NewSMSNotifier(logger *zap.Logger, out io.Writer) *SMSNotifier {
	return &SMSNotifier{logger: logger, out: out}
}

func (sn *SMSNotifier) SendSuccess(message string) {
	sn.send("success", fmt.Sprintf("SMS: %s (success)\n", message))
}

func (sn *SMSNotifier) SendFailure(message string) {
	sn.send("failure", fmt.Sprintf("SMS: %s (failure)\n", message))
}

func (sn *SMSNotifier) send(outcome, line string) {
	sn.logger.Debug("notifier: sending", zap.String("kind", SMSNotifierKind), zap.String("outcome", outcome))
	if _, err := io.WriteString(sn.out, line); err != nil {
		sn.logger.Error("notifier: failed to write notification", zap.String("kind", SMSNotifierKind), zap.Error(err))
	}
}

// NewNotifier provides the notifier matching the given kind. An empty
// kind falls back to email.
func NewNotifier(logger *zap.Logger, kind string, out io.Writer) (Notifier, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", EmailNotifierKind:
		return NewEmailNotifier(logger, out), nil
	case SMSNotifierKind:
		return NewSMSNotifier(logger, out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, kind)
	}
}
