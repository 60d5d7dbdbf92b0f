package config

// NotifxConfig configures the notification system.
type NotifxConfig struct {
	Provider    string `yaml:"provider" validate:"oneof=sparkpost ses resend console"`
	FromAddress string `yaml:"from_address" validate:"omitempty,email"`
	FromName    string `yaml:"from_name"`
	ReplyTo     string `yaml:"reply_to" validate:"omitempty,email"`
	AWSRegion   string `yaml:"aws_region"`
	ResendKey   string `yaml:"resend_api_key" validate:"required_if=Provider resend"`
	CampaignID  string `yaml:"campaign_id"`
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", getEnv("EMAIL_FROM_ADDRESS", "noreply@example.com")),
		FromName:    getEnv("NOTIFX_FROM_NAME", getEnv("EMAIL_FROM_NAME", "sparkx")),
		ReplyTo:     getEnv("NOTIFX_REPLY_TO", ""),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
		ResendKey:   getEnv("RESEND_API_KEY", ""),
		CampaignID:  getEnv("NOTIFX_CAMPAIGN_ID", ""),
	}
}
