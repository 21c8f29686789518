package notify

import "testing"

func TestEscapeAppleScript(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Fix tap", want: "Fix tap"},
		{name: "quote", in: `Say "hi"`, want: `Say \"hi\"`},
		{name: "trailing backslash", in: `C:\`, want: `C:\\`},
		{name: "backslash before quote", in: `x\" & (do shell script "id") & "`, want: `x\\\" & (do shell script \"id\") & \"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := escapeAppleScript(tc.in)
			if got != tc.want {
				t.Fatalf("escapeAppleScript(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if end := literalEnd(`"` + got + `"`); end != len(got)+1 {
				t.Fatalf("literal for %q closes early at %d", tc.in, end)
			}
		})
	}
}

// literalEnd returns the index of the quote that closes the AppleScript
// string literal starting at s[0].
func literalEnd(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
