package consts

// Response Type strings.
const (
	ResponseTypeNone                  = valueNone
	ResponseTypeAuthorizationCodeFlow = valueCode
	ResponseTypeImplicitFlowIDToken   = valueIDToken
	ResponseTypeImplicitFlowToken     = "token"
)
