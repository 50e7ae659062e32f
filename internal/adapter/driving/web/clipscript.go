package web

import "strings"

// templateLiteralEscaper escapes text for a JavaScript template literal that
// sits inside an HTML <script> element. Backslashes go first so later
// replacements are not double-escaped.
var templateLiteralEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"${", "\\${",
	"</", `<\/`,
	"<!--", `<\!--`,
)

// TemplateLiteral returns s quoted as a JavaScript template literal.
func TemplateLiteral(s string) string {
	return "`" + templateLiteralEscaper.Replace(s) + "`"
}

// CopyScript returns a <script> element that exposes post to clipboard.js as
// window.generatedPost.
func CopyScript(post string) string {
	return "<script>window.generatedPost = " + TemplateLiteral(post) + ";</script>"
}
