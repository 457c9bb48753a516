package messaging

// Queue Names
const (
	// MailQueueName - очередь исходящих писем, которую читает notification-service.
	MailQueueName = "mail_outbox"
)

// Message kinds carried in MailTask.Kind.
const (
	MailKindEmailVerification = "email_verification"
)
