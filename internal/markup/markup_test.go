package markup

import "testing"

func TestRender(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**Event Confirmed!**", "<strong>Event Confirmed!</strong>"},
		{"italic", "an *optional* step", "an <em>optional</em> step"},
		{"code", "room `R-204` is free", "room <code>R-204</code> is free"},
		{"line breaks", "line one\nline two", "line one<br>line two"},
		{"bold before italic", "**a** and *b*", "<strong>a</strong> and <em>b</em>"},
		{"links stay text", "[here](http://x)", "[here](http://x)"},
		{"escaped html", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"lone star pair reads as empty italic", "a ** b ` c", "a <em></em> b ` c"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Render(tc.in); got != tc.want {
				t.Fatalf("Render(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
