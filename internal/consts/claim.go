package consts

// Registered Claim strings. See https://www.iana.org/assignments/jwt/jwt.xhtml.
const (
	ClaimJWTID              = "jti"
	ClaimIssuedAt           = "iat"
	ClaimNotBefore          = "nbf"
	ClaimExpirationTime     = "exp"
	ClaimAuthenticationTime = "auth_time"
	ClaimIssuer             = valueIss
	ClaimSubject            = "sub"
	ClaimAudience           = "aud"
	ClaimFullName           = "name"
	ClaimPreferredUsername  = "preferred_username"
	ClaimPreferredEmail     = "email"
	ClaimAuthorizedParty    = "azp"
	ClaimClientIdentifier   = valueClientID
	ClaimScope              = valueScope
	ClaimActive             = "active"
	ClaimUsername           = "username"
	ClaimNonce              = valueNonce
	ClaimTokenUsage         = "token_usage"
)
