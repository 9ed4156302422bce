package directory

import (
	"context"
	"log"
)

// InviteSender delivers sign-up invitations. Fire-and-forget: a send
// failure is logged by callers and never rolls back the employee or
// request write that triggered it.
type InviteSender interface {
	Send(ctx context.Context, email, signupPath string) error
}

// LogSender writes invites to the process log instead of delivering them.
// Used in dev and tests; production wires the identity provider's
// invitation API here.
type LogSender struct{}

func (LogSender) Send(_ context.Context, email, signupPath string) error {
	log.Printf("invite: %s -> %s", email, signupPath)
	return nil
}
