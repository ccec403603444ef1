package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"code block and colon", "build failed: ```stack trace``` extra", "build failed"},
		{"plain", "Fetching repositories", "Fetching repositories"},
		{"collapses whitespace", "  scanning \t  files\n\nnow  ", "scanning files now"},
		{"multiline code block", "before ```go\nfunc main() {}\n``` after", "before after"},
		{"colon inside code block is removed first", "```a:b``` step done", "step done"},
		{"leading colon", ": secret detail", ""},
		{"unterminated fence kept", "oops ``` not closed", "oops ``` not closed"},
		{"two blocks", "x ```1``` y ```2``` z", "x y z"},
		{"non-string", 42, ""},
		{"nil", nil, ""},
		{"map", map[string]any{"msg": "hi"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Log(tt.in))
		})
	}
}

func TestLogs_DropsBlankAndKeepsOrder(t *testing.T) {
	got := Logs([]any{"first: detail", "", 7, "```only code```", "second"})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestLogs_Empty(t *testing.T) {
	assert.Empty(t, Logs(nil))
}
