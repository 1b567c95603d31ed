package openid

import (
	"net/url"
)

// Message is an open bag of OpenID Connect parameters. Values are either a
// string, a string slice or an arbitrary extension value. The typed accessors
// on Request and Response are plain views over the same keys, so writing
// through an accessor and writing through SetParameter are equivalent and
// observable through either path.
type Message struct {
	parameters map[string]any
}

// NewMessage returns an empty message.
func NewMessage() *Message {
	return &Message{parameters: map[string]any{}}
}

// NewMessageFromValues builds a message from decoded query or form values.
// Parameters that appear more than once keep their first value.
func NewMessageFromValues(values url.Values) *Message {
	m := NewMessage()

	for name, vals := range values {
		if len(vals) == 0 {
			continue
		}

		m.parameters[name] = vals[0]
	}

	return m
}

// GetParameter returns the raw value stored under name.
func (m *Message) GetParameter(name string) (value any, ok bool) {
	value, ok = m.parameters[name]

	return
}

// SetParameter stores value under name. A nil value removes the parameter.
func (m *Message) SetParameter(name string, value any) {
	if value == nil {
		delete(m.parameters, name)

		return
	}

	m.parameters[name] = value
}

// RemoveParameter deletes the parameter stored under name.
func (m *Message) RemoveParameter(name string) {
	delete(m.parameters, name)
}

// GetString returns the parameter under name rendered as its wire form. Slices
// are joined with single spaces. Extension values that are not strings render
// as the empty string.
func (m *Message) GetString(name string) string {
	switch value := m.parameters[name].(type) {
	case string:
		return value
	case []string:
		return Arguments(value).String()
	case Arguments:
		return value.String()
	default:
		return ""
	}
}

// SetString stores a string parameter under name. The empty string removes the
// parameter, matching the wire form where absent and empty are the same thing.
func (m *Message) SetString(name, value string) {
	if value == "" {
		delete(m.parameters, name)

		return
	}

	m.parameters[name] = value
}

// GetArguments tokenizes the space-delimited parameter under name.
func (m *Message) GetArguments(name string) Arguments {
	return ParseArguments(m.GetString(name))
}

// ParameterNames returns the names of all stored parameters in no particular
// order.
func (m *Message) ParameterNames() []string {
	names := make([]string, 0, len(m.parameters))

	for name := range m.parameters {
		names = append(names, name)
	}

	return names
}

// ToValues renders all string-valued parameters as url.Values. Extension
// values that have no wire form are skipped.
func (m *Message) ToValues() url.Values {
	values := url.Values{}

	for name := range m.parameters {
		if s := m.GetString(name); s != "" {
			values.Set(name, s)
		}
	}

	return values
}
