package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Notify   NotifyConfig   `mapstructure:"notify" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// NotifyConfig controls the best-effort notification pipeline that runs
// after a successful purchase.
type NotifyConfig struct {
	// QueueSize is the buffer size of the notification task queue.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`

	// WorkerCount is the number of concurrent notification workers.
	WorkerCount int `mapstructure:"worker_count" validate:"required,gt=0"`

	// Services lists the registry names of the notification services to
	// trigger after each purchase (e.g. "send_email", "send_crm").
	Services []string `mapstructure:"services"`
}
