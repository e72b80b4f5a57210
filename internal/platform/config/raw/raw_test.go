package raw

import "testing"

func TestEnvString(t *testing.T) {
	t.Setenv("LOG_LEVEL", "  info ")

	log := New().Prefix("LOG_")
	if got := log.String("LEVEL", "debug"); got != "info" {
		t.Fatalf("String(LEVEL) = %q, want info", got)
	}
	if got := log.String("MISSING", "dflt"); got != "dflt" {
		t.Fatalf("String(MISSING) = %q, want dflt", got)
	}
}

func TestEnvBool(t *testing.T) {
	e := New().Prefix("B_")
	cases := []struct {
		val  string
		def  bool
		want bool
	}{
		{"", true, true},
		{"", false, false},
		{"1", false, true},
		{"YES", false, true},
		{"on", false, true},
		{"0", true, false},
		{"nah", true, false},
	}
	for _, c := range cases {
		t.Setenv("B_FLAG", c.val)
		if got := e.Bool("FLAG", c.def); got != c.want {
			t.Fatalf("Bool(%q, %v) = %v, want %v", c.val, c.def, got, c.want)
		}
	}
}

func TestEnvInt(t *testing.T) {
	e := New()
	t.Setenv("N_OK", "12")
	t.Setenv("N_NEG", "-3")
	t.Setenv("N_BAD", "x1")

	if got := e.Int("N_OK", 1); got != 12 {
		t.Fatalf("Int(N_OK) = %d", got)
	}
	if got := e.Int("N_NEG", 1); got != 1 {
		t.Fatalf("Int(N_NEG) = %d, want default", got)
	}
	if got := e.Int("N_BAD", 7); got != 7 {
		t.Fatalf("Int(N_BAD) = %d, want default", got)
	}
	if got := e.Int("N_UNSET", 9); got != 9 {
		t.Fatalf("Int(N_UNSET) = %d, want default", got)
	}
}
