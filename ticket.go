package openid

import (
	"time"

	"github.com/mohae/deepcopy"

	"github.com/openid-go/openid/internal/consts"
)

// Claim is a single statement about an identity.
type Claim struct {
	Type   string
	Value  string
	Issuer string
}

// Identity is the set of claims describing an authenticated party.
type Identity struct {
	Claims []Claim
}

// NewIdentity returns an identity carrying the mandatory subject claim.
func NewIdentity(subject string) *Identity {
	identity := &Identity{}

	if subject != "" {
		identity.AddClaim(consts.ClaimSubject, subject)
	}

	return identity
}

// AddClaim appends a claim of the given type and value.
func (i *Identity) AddClaim(claimType, value string) *Identity {
	i.Claims = append(i.Claims, Claim{Type: claimType, Value: value})

	return i
}

// GetClaim returns the value of the first claim of the given type, or the
// empty string when no such claim exists.
func (i *Identity) GetClaim(claimType string) string {
	for _, claim := range i.Claims {
		if claim.Type == claimType {
			return claim.Value
		}
	}

	return ""
}

// HasClaim reports whether a claim of the given type exists.
func (i *Identity) HasClaim(claimType string) bool {
	for _, claim := range i.Claims {
		if claim.Type == claimType {
			return true
		}
	}

	return false
}

// Subject returns the value of the subject claim.
func (i *Identity) Subject() string {
	return i.GetClaim(consts.ClaimSubject)
}

// AuthenticationTicket bundles a resolved identity with the string-keyed
// metadata driving token issuance. Tickets are created by the flow handlers or
// reconstructed by a deserializer, and are never mutated after they are handed
// to a serializer.
type AuthenticationTicket struct {
	Identity   *Identity
	Properties map[string]string
}

// NewTicket returns a ticket for the given identity.
func NewTicket(identity *Identity) *AuthenticationTicket {
	return &AuthenticationTicket{
		Identity:   identity,
		Properties: map[string]string{},
	}
}

// GetProperty returns the metadata value stored under name.
func (t *AuthenticationTicket) GetProperty(name string) string {
	return t.Properties[name]
}

// SetProperty stores a metadata value. The empty string removes the property.
func (t *AuthenticationTicket) SetProperty(name, value string) {
	if value == "" {
		delete(t.Properties, name)

		return
	}

	t.Properties[name] = value
}

// GetScopes returns the scopes granted to the ticket.
func (t *AuthenticationTicket) GetScopes() Arguments {
	return ParseArguments(t.Properties[consts.PropertyScopes])
}

// SetScopes replaces the scopes granted to the ticket.
func (t *AuthenticationTicket) SetScopes(scopes ...string) {
	t.SetProperty(consts.PropertyScopes, Arguments(RemoveEmpty(scopes)).String())
}

// HasScope reports, case-sensitively, whether the ticket was granted scope.
func (t *AuthenticationTicket) HasScope(scope string) bool {
	return t.GetScopes().Has(scope)
}

// GetAudiences returns the audiences of the ticket.
func (t *AuthenticationTicket) GetAudiences() Arguments {
	return ParseArguments(t.Properties[consts.PropertyAudiences])
}

// SetAudiences replaces the audiences of the ticket.
func (t *AuthenticationTicket) SetAudiences(audiences ...string) {
	t.SetProperty(consts.PropertyAudiences, Arguments(RemoveEmpty(audiences)).String())
}

// GetResources returns the resources of the ticket. When no explicit resources
// were stored the audiences are returned instead. The inference is one-way
// only, GetAudiences never falls back to the resources.
func (t *AuthenticationTicket) GetResources() Arguments {
	if resources, ok := t.Properties[consts.PropertyResources]; ok {
		return ParseArguments(resources)
	}

	return t.GetAudiences()
}

// SetResources replaces the resources of the ticket.
func (t *AuthenticationTicket) SetResources(resources ...string) {
	t.SetProperty(consts.PropertyResources, Arguments(RemoveEmpty(resources)).String())
}

// GetPresenters returns the client identifiers authorized to present tokens
// minted from the ticket.
func (t *AuthenticationTicket) GetPresenters() Arguments {
	return ParseArguments(t.Properties[consts.PropertyPresenters])
}

// SetPresenters replaces the presenters of the ticket.
func (t *AuthenticationTicket) SetPresenters(presenters ...string) {
	t.SetProperty(consts.PropertyPresenters, Arguments(RemoveEmpty(presenters)).String())
}

// GetExpiresAt returns the absolute expiration of the ticket when one is
// recorded.
func (t *AuthenticationTicket) GetExpiresAt() (expiresAt time.Time, ok bool) {
	return t.getTime(consts.PropertyExpiresAt)
}

// SetExpiresAt records the absolute expiration of the ticket.
func (t *AuthenticationTicket) SetExpiresAt(expiresAt time.Time) {
	t.setTime(consts.PropertyExpiresAt, expiresAt)
}

// GetIssuedAt returns the issue time of the ticket when one is recorded.
func (t *AuthenticationTicket) GetIssuedAt() (issuedAt time.Time, ok bool) {
	return t.getTime(consts.PropertyIssuedAt)
}

// SetIssuedAt records the issue time of the ticket.
func (t *AuthenticationTicket) SetIssuedAt(issuedAt time.Time) {
	t.setTime(consts.PropertyIssuedAt, issuedAt)
}

// GetNonce returns the nonce carried over from the authorization request.
func (t *AuthenticationTicket) GetNonce() string {
	return t.Properties[consts.PropertyNonce]
}

// SetNonce records the nonce carried over from the authorization request.
func (t *AuthenticationTicket) SetNonce(nonce string) {
	t.SetProperty(consts.PropertyNonce, nonce)
}

// GetTokenUsage returns the kind of token the ticket was serialized into.
func (t *AuthenticationTicket) GetTokenUsage() string {
	return t.Properties[consts.PropertyTokenUsage]
}

// SetTokenUsage records the kind of token the ticket is serialized into.
func (t *AuthenticationTicket) SetTokenUsage(usage string) {
	t.SetProperty(consts.PropertyTokenUsage, usage)
}

// GetTokenID returns the unique identifier of the serialized token.
func (t *AuthenticationTicket) GetTokenID() string {
	return t.Properties[consts.PropertyTokenID]
}

// SetTokenID records the unique identifier of the serialized token.
func (t *AuthenticationTicket) SetTokenID(id string) {
	t.SetProperty(consts.PropertyTokenID, id)
}

// GetMessageType returns the message kind marker of the request the ticket
// was resolved for.
func (t *AuthenticationTicket) GetMessageType() string {
	return t.Properties[consts.PropertyMessageType]
}

// SetMessageType records the message kind marker on the ticket.
func (t *AuthenticationTicket) SetMessageType(kind string) {
	t.SetProperty(consts.PropertyMessageType, kind)
}

// SetConfidentialityLevel records the confidentiality level of the ticket.
func (t *AuthenticationTicket) SetConfidentialityLevel(level string) {
	t.SetProperty(consts.PropertyConfidentialityLevel, level)
}

// IsConfidential reports whether the ticket was minted under a validated
// client authentication.
func (t *AuthenticationTicket) IsConfidential() bool {
	return t.Properties[consts.PropertyConfidentialityLevel] == consts.ConfidentialityLevelPrivate
}

// Clone returns a deep copy of the ticket, used to hand a snapshot to the
// serializer events without exposing the resolved ticket to mutation.
func (t *AuthenticationTicket) Clone() *AuthenticationTicket {
	clone := deepcopy.Copy(t).(*AuthenticationTicket)

	if clone.Properties == nil {
		clone.Properties = map[string]string{}
	}

	return clone
}

func (t *AuthenticationTicket) getTime(name string) (value time.Time, ok bool) {
	raw, ok := t.Properties[name]
	if !ok {
		return time.Time{}, false
	}

	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}

	return value, true
}

func (t *AuthenticationTicket) setTime(name string, value time.Time) {
	if value.IsZero() {
		delete(t.Properties, name)

		return
	}

	t.Properties[name] = value.UTC().Format(time.RFC3339)
}
