package openid

import (
	"github.com/openid-go/openid/internal/consts"
)

// Message kinds stamped on extracted requests.
const (
	MessageTypeAuthorizationRequest = consts.MessageTypeAuthorizationRequest
	MessageTypeConfigurationRequest = consts.MessageTypeConfigurationRequest
	MessageTypeCryptographyRequest  = consts.MessageTypeCryptographyRequest
	MessageTypeIntrospectionRequest = consts.MessageTypeIntrospectionRequest
	MessageTypeLogoutRequest        = consts.MessageTypeLogoutRequest
	MessageTypeRevocationRequest    = consts.MessageTypeRevocationRequest
	MessageTypeTokenRequest         = consts.MessageTypeTokenRequest
	MessageTypeUserinfoRequest      = consts.MessageTypeUserinfoRequest
)

// Token usages recorded on tickets handed to the serializers.
const (
	TokenUsageAccessToken       = consts.TokenUsageAccessToken
	TokenUsageRefreshToken      = consts.TokenUsageRefreshToken
	TokenUsageIdentityToken     = consts.TokenUsageIDToken
	TokenUsageAuthorizationCode = consts.TokenUsageAuthorizationCode
)

// Confidentiality levels recorded on tickets.
const (
	ConfidentialityLevelPrivate = consts.ConfidentialityLevelPrivate
	ConfidentialityLevelPublic  = consts.ConfidentialityLevelPublic
)

// ScopeOpenID is the scope granted by default when a resolved ticket carries
// no explicit scopes. ScopeOfflineAccess gates refresh token issuance.
const (
	ScopeOpenID        = "openid"
	ScopeOfflineAccess = "offline_access"
)

// messageType returns the message kind marker for an endpoint.
func messageType(endpoint Endpoint) string {
	switch endpoint {
	case EndpointAuthorization:
		return MessageTypeAuthorizationRequest
	case EndpointConfiguration:
		return MessageTypeConfigurationRequest
	case EndpointCryptography:
		return MessageTypeCryptographyRequest
	case EndpointIntrospection:
		return MessageTypeIntrospectionRequest
	case EndpointLogout:
		return MessageTypeLogoutRequest
	case EndpointRevocation:
		return MessageTypeRevocationRequest
	case EndpointToken:
		return MessageTypeTokenRequest
	case EndpointUserinfo:
		return MessageTypeUserinfoRequest
	default:
		return ""
	}
}
