// Package email delivers account notifications through the Resend API.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/VGabriel45/VetDbAdministratorBackend/internal/core/domain"
)

// ResendNotifier sends the generated-password email to freshly registered
// customers. The password appears only in the outgoing message body, never in
// logs or stored state.
type ResendNotifier struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

func NewResendNotifier(apiKey, from string, log zerolog.Logger) *ResendNotifier {
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		log:    log,
	}
}

func (n *ResendNotifier) SendGeneratedPassword(ctx context.Context, customer *domain.Customer, password string) error {
	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{customer.Email},
		Subject: "Your clinic account",
		Text: fmt.Sprintf(
			"Hello %s %s,\n\nAn account has been created for you by your clinic.\n\nUsername: %s\nPassword: %s\n\nPlease sign in and change your password.\n",
			customer.FirstName, customer.LastName, customer.Username, password,
		),
	}

	sent, err := n.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("send password email: %w", err)
	}

	n.log.Info().
		Str("email_id", sent.Id).
		Str("customer_id", customer.ID).
		Msg("password email sent")
	return nil
}
