package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	APIPrefix = "/api/v1"

	// Context keys set by the auth middleware.
	ContextKeyPrincipal = "principal"
	ContextKeyRequestID = "request_id"
)

// Table names
const (
	TableOwners           = "cp_owners"
	TableProducts         = "cp_products"
	TablePools            = "cp_pools"
	TableConsumers        = "cp_consumers"
	TableConsumerGuests   = "cp_consumer_guests"
	TableEntitlements     = "cp_entitlements"
	TableContentOverrides = "cp_content_overrides"
	TableCasbinRules      = "cp_casbin_rules"
)

// Permission actions understood by the access enforcer.
const (
	AccessRead = "READ"
	AccessAll  = "ALL"
)
