package consts

const (
	TokenTypeAccessToken       = valueAccessToken
	TokenTypeRefreshToken      = valueRefreshToken
	TokenTypeIDToken           = valueIDToken
	TokenTypeAuthorizationCode = valueCode
)

const (
	AccessResponseRefreshToken      = valueRefreshToken
	AccessResponseAccessToken       = valueAccessToken
	AccessResponseIDToken           = valueIDToken
	AccessResponseExpiresIn         = valueExpiresIn
	AccessResponseScope             = valueScope
	AccessResponseAuthorizationCode = valueCode
	AccessResponseTokenType         = "token_type"
)

const (
	BearerAccessToken = "Bearer"
)
