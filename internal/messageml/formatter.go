// Package messageml builds outbound MessageML payloads.
//
// MessageML is the XML-like wrapper format the platform expects for every
// message body. These are pure string functions: they never fail and never
// touch the network, which keeps them trivially testable.
package messageml

import (
	"fmt"
	"strings"
)

const (
	openTag  = "<messageML>"
	closeTag = "</messageML>"
)

// escaper rewrites the XML reserved characters in a single pass over the
// input, so each reserved character is escaped exactly once.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Format wraps plain text in the MessageML root tag. Text that already is
// a MessageML document passes through unchanged, embedded newlines and all;
// the caller is responsible for escaping inside pre-wrapped input.
func Format(text string) string {
	if strings.HasPrefix(text, openTag) {
		return text
	}
	return openTag + text + closeTag
}

// FormatReply builds a reply addressed at recipientEmail: the body is
// escaped first, then prefixed with the mention element, then wrapped.
// Escaping before concatenation keeps the mention tag itself intact.
func FormatReply(recipientEmail, text string) string {
	return openTag + Mention(recipientEmail) + Escape(text) + closeTag
}

// Escape rewrites the XML reserved characters &, < and > as entities,
// each exactly once.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Mention renders the inline mention element for a recipient email
func Mention(email string) string {
	return fmt.Sprintf(`<mention email="%s"/>`, email)
}
