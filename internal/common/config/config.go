package config

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig               `mapstructure:"app"`
	Camunda    CamundaConfig           `mapstructure:"camunda"`
	Workers    map[string]WorkerConfig `mapstructure:"workers" validate:"dive"`
	Logging    LoggingConfig           `mapstructure:"logging"`
	Metrics    MetricsConfig           `mapstructure:"metrics"`
	Validation ValidationConfig        `mapstructure:"validation"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address" validate:"required,hostname_port"`
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout        int    `mapstructure:"timeout" validate:"gte=1"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout" validate:"gte=1"` // milliseconds
	ConnectRetries int    `mapstructure:"connect_retries" validate:"gte=1"`
	ConnectBackoff int    `mapstructure:"connect_backoff" validate:"gte=1"` // milliseconds, doubled per attempt
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active" validate:"gte=1"`
	Timeout       int  `mapstructure:"timeout" validate:"gte=1"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries" validate:"gte=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the settings of the health and metrics HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"gte=1,lte=65535"`
	Path    string `mapstructure:"path" validate:"startswith=/"`
}

// ValidationConfig tunes the card application validator.
type ValidationConfig struct {
	// Aggregation is how violations collapse into one message: abort_early, last, first or all.
	Aggregation string `mapstructure:"aggregation" validate:"oneof=abort_early last first all"`
	// AgeCutoff is fixed365 or calendar.
	AgeCutoff  string `mapstructure:"age_cutoff" validate:"oneof=fixed365 calendar"`
	MinimumAge int    `mapstructure:"minimum_age" validate:"gte=1,lte=150"`
}
