package external

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"raincheck/internal/config"
	"raincheck/internal/types"
)

func TestSMTPDispatcher_Send_InvalidRecipient(t *testing.T) {
	d := NewSMTPDispatcher(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "alerts@example.com",
		From:     "alerts@example.com",
	}, nil)

	err := d.Send(context.Background(), "not an address", "subject", "body")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeValidationInvalidEmail, appErr.Code)
}

func TestSMTPDispatcher_Send_InvalidSender(t *testing.T) {
	d := NewSMTPDispatcher(config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "broken sender",
	}, nil)

	err := d.Send(context.Background(), "user@example.com", "subject", "body")
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeInternalUnexpected, appErr.Code)
}

func TestTLSPolicyFromEncryption(t *testing.T) {
	assert.Equal(t, mail.TLSMandatory, tlsPolicyFromEncryption("ssl_tls"))
	assert.Equal(t, mail.TLSOpportunistic, tlsPolicyFromEncryption("starttls"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption("none"))
	assert.Equal(t, mail.NoTLS, tlsPolicyFromEncryption(""))
}
