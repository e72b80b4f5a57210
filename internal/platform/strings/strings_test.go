package strings

import (
	"testing"

	kit "reviewharvest/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty non empty = %v", got)
	}
	if got := IfEmpty(nil, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty empty = %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if MustString("crawls", "name") != "crawls" {
		t.Fatalf("MustString changed value")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"crawls":      "/crawls",
		"/crawls/":    "/crawls",
		"  /meta  ":   "/meta",
		"//schedule/": "/schedule",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestClip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel…"},
		{"质量很好", 2, "质量…"},
		{"abc", 0, ""},
	}
	for _, c := range cases {
		if got := Clip(c.in, c.n); got != c.want {
			t.Fatalf("Clip(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}

func TestDigits(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"10032280299715": true,
		"":               false,
		"12a":            false,
		" 12":            false,
	}
	for in, want := range cases {
		if got := Digits(in); got != want {
			t.Fatalf("Digits(%q) = %v, want %v", in, got, want)
		}
	}
}
