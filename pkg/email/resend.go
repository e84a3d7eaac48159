package email

import (
	"fmt"
	"os"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client      *resend.Client
	from        string
	fromName    string
	frontendURL string
}

func NewEmailService() *EmailService {
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return &EmailService{
		client:      resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:        os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:    os.Getenv("EMAIL_FROM_NAME"),
		frontendURL: frontendURL,
	}
}

// SendPasswordResetEmail mails the reset link. The token expires one hour
// after creation, which the copy below promises to the user.
func (s *EmailService) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h1 style="color: #333;">Password Reset</h1>
			<p>You requested a password reset for your account.</p>
			<p>Click the button below to choose a new password:</p>
			<a href="%s"
			   style="display: inline-block; background-color: #2563eb; color: white;
			          padding: 12px 24px; text-decoration: none; border-radius: 6px;
			          margin: 16px 0;">
				Reset Password
			</a>
			<p style="color: #666; font-size: 14px;">This link expires in 1 hour.</p>
			<p style="color: #666; font-size: 14px;">
				If you did not request a reset, you can safely ignore this email.
			</p>
		</div>`, resetURL)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: "Reset your password",
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
