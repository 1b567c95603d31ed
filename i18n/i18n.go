package i18n

import (
	"net/http"

	"golang.org/x/text/language"
)

// MessageCatalog resolves localized protocol messages.
type MessageCatalog interface {
	GetMessage(id string, tag language.Tag, v ...any) string
	GetLangFromRequest(r *http.Request) language.Tag
}

// GetMessageOrDefault returns the translated message for id, or def when the
// catalog is nil or has no translation.
func GetMessageOrDefault(c MessageCatalog, id string, tag language.Tag, def string, v ...any) string {
	if c != nil {
		if s := c.GetMessage(id, tag, v...); s != id {
			return s
		}
	}

	return def
}

// GetLangFromRequest derives the language tag for a request, defaulting to
// English when no catalog is configured.
func GetLangFromRequest(c MessageCatalog, r *http.Request) language.Tag {
	if c != nil {
		return c.GetLangFromRequest(r)
	}

	return language.English
}
