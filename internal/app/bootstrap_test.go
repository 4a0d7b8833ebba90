package app

import "testing"

func TestListenAddr(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"8080", ":8080", true},
		{":8080", ":8080", true},
		{" 3000 ", ":3000", true},
		{"", "", false},
		{"   ", "", false},
	}
	for _, c := range cases {
		got, err := ListenAddr(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("ListenAddr(%q) = %q, %v; want %q", c.in, got, err, c.want)
		}
		if !c.ok && err == nil {
			t.Fatalf("ListenAddr(%q) should fail", c.in)
		}
	}
}
