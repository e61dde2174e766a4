package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("sink closed")
}

func TestEmailNotifier(t *testing.T) {
	out := &bytes.Buffer{}
	n := NewEmailNotifier(zap.NewNop(), out)
	n.SendSuccess("Book 'Go' added successfully.")
	n.SendFailure("Book with id 'b:1' not found.")
	assert.Equal(t,
		"Email: [SUCCESS] Book 'Go' added successfully.\nEmail: [FAILURE] Book with id 'b:1' not found.\n",
		out.String())
}

func TestSMSNotifier(t *testing.T) {
	out := &bytes.Buffer{}
	n := NewSMSNotifier(zap.NewNop(), out)
	n.SendSuccess("done")
	n.SendFailure("oops")
	assert.Equal(t, "SMS: done (success)\nSMS: oops (failure)\n", out.String())
}

func TestNotifier_WriteErrorIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	n := NewSMSNotifier(zap.New(core), failingWriter{})

	assert.NotPanics(t, func() { n.SendFailure("lost") })
	entries := logs.FilterMessage("notifier: failed to write notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sms", entries[0].ContextMap()["kind"])
}

func TestNewNotifier(t *testing.T) {
	tests := []struct {
		kind    string
		want    Notifier
		wantErr error
	}{
		{"", &EmailNotifier{}, nil},
		{"email", &EmailNotifier{}, nil},
		{" EMAIL ", &EmailNotifier{}, nil},
		{"sms", &SMSNotifier{}, nil},
		{"Sms", &SMSNotifier{}, nil},
		{"pigeon", nil, ErrUnknownNotifier},
	}
	for _, tc := range tests {
		t.Run("kind "+tc.kind, func(t *testing.T) {
			n, err := NewNotifier(zap.NewNop(), tc.kind, &bytes.Buffer{})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tc.want, n)
		})
	}
}

func TestLibrary_WithEmailNotifier(t *testing.T) {
	out := &bytes.Buffer{}
	lib := NewLibrary(zap.NewNop(), NewEmailNotifier(zap.NewNop(), out), NewIDsHandler(), out)
	lib.DeleteUser("u:1")
	assert.Equal(t, "Email: [FAILURE] User with id 'u:1' not found.\n", out.String())
}
