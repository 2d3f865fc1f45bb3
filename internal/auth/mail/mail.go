// Package mail delivers transactional email. Delivery is best-effort
// everywhere it is used: a failed send is logged and swallowed so signup
// and reset flows never fail because the mail host is down.
package mail

import "context"

// Dispatcher sends the transactional messages the auth flows emit.
type Dispatcher interface {
	// SendVerification mails the signup verification token.
	SendVerification(ctx context.Context, to, token string) error

	// SendPasswordReset mails a reset token.
	SendPasswordReset(ctx context.Context, to, token string) error

	// SendContactMessage forwards a contact-form message to the support
	// inbox, tagged with the sender's identity.
	SendContactMessage(ctx context.Context, fromIdentityID, subject, body string) error
}
