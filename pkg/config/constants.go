package config

const (
	// EnvPrefix namespaces every environment variable the gateway reads.
	EnvPrefix = "restaurant"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "RESTAURANT_DB_DSN"
	EnvDBHost = "RESTAURANT_DB_HOST"
	EnvDBUser = "RESTAURANT_DB_USER"
	EnvDBName = "RESTAURANT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
