package consts

// Grant Type strings.
const (
	GrantTypeAuthorizationCode                = "authorization_code"
	GrantTypeClientCredentials                = "client_credentials"
	GrantTypeRefreshToken                     = valueRefreshToken
	GrantTypeResourceOwnerPasswordCredentials = valuePassword
)
