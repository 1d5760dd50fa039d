package constants

const (
	ServiceName = "stomatology"

	ConfigName   = "config"
	ConfigFormat = "yaml"

	EnvPrefix = "STOMATOLOGY"
)

// Environments recognised by server.environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends recognised by storage.backend.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// RedisSessionPrefix prefixes the session key checked by the auth middleware.
const RedisSessionPrefix = "session:"

// RedisConfirmPrefix prefixes one-time delete confirmation tokens.
const RedisConfirmPrefix = "confirm:"
