// Package constants holds string values shared between config and infrastructure.
package constants

const (
	// EnvDevelop is the env name used for local development.
	EnvDevelop = "develop"
	// EnvProduction is the env name used in production.
	EnvProduction = "production"
)

// Pub/Sub providers.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Mail transports selected by mail.transport.
const (
	MailTransportNoop     = "noop"
	MailTransportSMTP     = "smtp"
	MailTransportPubSub   = "pubsub"
	MailTransportRabbitMQ = "rabbitmq"
)

// File host providers selected by fileHost.provider.
const (
	FileHostProviderBlob  = "blob"
	FileHostProviderMinio = "minio"
)

// Message attribute keys carried alongside mail events.
const (
	AttrRequestID = "request_id"
	AttrTemplate  = "template"
)
