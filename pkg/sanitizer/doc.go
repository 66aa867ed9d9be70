// Package sanitizer cleans user-supplied text before it is stored or
// embedded in outgoing messages.
//
// HTML helpers are backed by bluemonday:
//
//	sanitizer.StripHTML(`<b>hi</b>`)     // "hi"
//	sanitizer.SanitizeHTML(`<p onclick=x>hi</p>`) // "<p>hi</p>"
//
// Text helpers trim, NFC-normalize, and escape:
//
//	sanitizer.Text("  Café ")   // "Café" (single code point é)
//	sanitizer.Email(" Bob@Example.COM ") // "bob@example.com"
//	sanitizer.EscapeMarkdown("*bold*")   // `\*bold\*`
package sanitizer
