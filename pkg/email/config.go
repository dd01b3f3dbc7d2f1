package email

// Config configures the Postmark sender. The account token is only needed
// for account level API calls and may stay empty. Replies go to SupportEmail
// when it is set.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"qr@localhost.localdomain"`
	SupportEmail         string `env:"SUPPORT_EMAIL"`
}
