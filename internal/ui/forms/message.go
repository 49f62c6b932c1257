package forms

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/message"

	"github.com/Its-donkey/webstay/internal/ui/model"
)

var plainText = bluemonday.StrictPolicy()

// NotificationMessage formats the operator notification for a new signup.
// Markup is stripped from the visitor's values since the text is relayed
// to a chat webhook verbatim.
func NotificationMessage(p *message.Printer, values model.FormState) string {
	return p.Sprintf("notify.message",
		stripMarkup(values.Name),
		stripMarkup(values.Email),
		stripMarkup(values.Age),
	)
}

func stripMarkup(value string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(value)))
}
