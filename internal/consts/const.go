package consts

const (
	valueScope        = "scope"
	valueClientID     = "client_id"
	valueExpiresIn    = "expires_in"
	valueNone         = "none"
	valueRefreshToken = "refresh_token"
	valueIDToken      = "id_token"
	valueAccessToken  = "access_token"
	valueIss          = "iss"
	valueCode         = "code"
	valuePassword     = "password"
	valueNonce        = "nonce"
	valueState        = "state"
)
