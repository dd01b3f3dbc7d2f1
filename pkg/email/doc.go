// Package email sends share messages.
//
// EmailSender has two implementations. PostmarkClient delivers through the
// Postmark API and base64 encodes attachments the way the API expects.
// DevSender writes each message into a directory, which is what development
// environments use when no Postmark token is configured.
//
//	sender, err := email.NewPostmarkClient(email.Config{
//		PostmarkServerToken: token,
//		SenderEmail:         "qr@example.com",
//	})
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:      "someone@example.com",
//		Subject:     "Your QR code",
//		BodyHTML:    body,
//		Attachments: []email.Attachment{{Name: "qr-code.png", ContentType: "image/png", Data: png}},
//	})
//
// Both senders validate SendEmailParams first and fail with ErrInvalidParams.
// Delivery failures wrap ErrFailedToSendEmail. HTML bodies are rendered with
// the templ components in the templates subpackage.
package email
