package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Driver picks the backend: "file" keeps the whole collection in one
	// JSON snapshot on disk, "postgres" stores it in a database.
	Driver string `mapstructure:"driver" validate:"required,oneof=file postgres"`

	// Path is the snapshot file location for the file driver.
	Path string `mapstructure:"path" validate:"required_if=Driver file"`

	// URL is the database connection string for the postgres driver.
	URL string `mapstructure:"url" validate:"required_if=Driver postgres"`
}
