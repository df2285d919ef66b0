package domain

import "context"

// EmailMessage is one outgoing email. At least one of HTML and Text is set.
type EmailMessage struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RewardCreditedEmailData holds data for the reward credited email.
type RewardCreditedEmailData struct {
	Email     string
	Point     int
	DrawCount int
	// Balances after the credit.
	TotalPoint     int
	TotalDrawCount int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRewardCredited(ctx context.Context, data *RewardCreditedEmailData) error
}
