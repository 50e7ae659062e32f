package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateLiteral(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hello", want: "`hello`"},
		{name: "backtick", input: "use `go test`", want: "`use \\`go test\\``"},
		{name: "backslash", input: `C:\path`, want: "`C:\\\\path`"},
		{name: "interpolation", input: "cost ${price}", want: "`cost \\${price}`"},
		{name: "lone dollar", input: "$5 coffee", want: "`$5 coffee`"},
		{name: "closing script", input: "</script><b>", want: "`<\\/script><b>`"},
		{name: "html comment", input: "<!-- x", want: "`<\\!-- x`"},
		{name: "newlines kept", input: "a\nb", want: "`a\nb`"},
		{name: "escaped backtick", input: "\\`", want: "`\\\\\\``"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TemplateLiteral(tt.input))
		})
	}
}

func TestCopyScript_CannotBreakOutOfScript(t *testing.T) {
	post := "Great post </script><script>alert(1)</script> `${document.cookie}`"

	script := CopyScript(post)

	assert.True(t, strings.HasPrefix(script, "<script>window.generatedPost = `"))
	assert.True(t, strings.HasSuffix(script, "`;</script>"))
	assert.Equal(t, 1, strings.Count(script, "</script>"), "only the closing tag of the wrapper")
	assert.Contains(t, script, `\${document.cookie}`)
}
