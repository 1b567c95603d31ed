package consts

const (
	FormParameterState                                     = valueState
	FormParameterAuthorizationCode                         = valueCode
	FormParameterClientID                                  = valueClientID
	FormParameterClientSecret                              = "client_secret"
	FormParameterRedirectURI                               = "redirect_uri"
	FormParameterPostLogoutRedirectURI                     = "post_logout_redirect_uri"
	FormParameterNonce                                     = valueNonce
	FormParameterResponseMode                              = "response_mode"
	FormParameterResponseType                              = "response_type"
	FormParameterGrantType                                 = "grant_type"
	FormParameterScope                                     = valueScope
	FormParameterResource                                  = "resource"
	FormParameterAudience                                  = "audience"
	FormParameterRefreshToken                              = valueRefreshToken
	FormParameterIDToken                                   = valueIDToken
	FormParameterIDTokenHint                               = "id_token_hint"
	FormParameterToken                                     = "token"
	FormParameterTokenTypeHint                             = "token_type_hint"
	FormParameterError                                     = "error"
	FormParameterErrorDescription                          = "error_description"
	FormParameterErrorURI                                  = "error_uri"
	FormParameterUsername                                  = "username"
	FormParameterPassword                                  = valuePassword
	FormParameterAccessToken                               = valueAccessToken
	FormParameterMaximumAge                                = "max_age"
	FormParameterPrompt                                    = "prompt"
	FormParameterDisplay                                   = "display"
	FormParameterUILocales                                 = "ui_locales"
	FormParameterLoginHint                                 = "login_hint"
	FormParameterAuthenticationContextClassReferenceValues = "acr_values"
	FormParameterCode                                      = valueCode
)
