package consts

// Reserved message type markers stamped on requests at extraction time.
const (
	MessageTypeAuthorizationRequest = "authorization_request"
	MessageTypeConfigurationRequest = "configuration_request"
	MessageTypeCryptographyRequest  = "cryptography_request"
	MessageTypeIntrospectionRequest = "introspection_request"
	MessageTypeLogoutRequest        = "logout_request"
	MessageTypeRevocationRequest    = "revocation_request"
	MessageTypeTokenRequest         = "token_request"
	MessageTypeUserinfoRequest      = "userinfo_request"
)

// Reserved property keys on messages and tickets.
const (
	PropertyMessageType          = "message_type"
	PropertyScopes               = "scopes"
	PropertyAudiences            = "audiences"
	PropertyResources            = "resources"
	PropertyPresenters           = "presenters"
	PropertyConfidentialityLevel = "confidentiality_level"
	PropertyNonce                = valueNonce
	PropertyTokenUsage           = "token_usage"
	PropertyTokenID              = "token_id"
	PropertyIssuedAt             = "issued_at"
	PropertyExpiresAt            = "expires_at"
)

// Confidentiality levels recorded on requests and tickets.
const (
	ConfidentialityLevelPrivate = "private"
	ConfidentialityLevelPublic  = "public"
)

// Token usages recorded on tickets handed to serializers.
const (
	TokenUsageAccessToken       = valueAccessToken
	TokenUsageRefreshToken      = valueRefreshToken
	TokenUsageIDToken           = valueIDToken
	TokenUsageAuthorizationCode = valueCode
)
