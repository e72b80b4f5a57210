package logger

import (
	"bytes"
	"context"
	"testing"

	kit "reviewharvest/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"panic":   zerolog.PanicLevel,
		"":        zerolog.InfoLevel,
		" loud ":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "reviewharvest-fetch")

	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || o.Service != "reviewharvest-fetch" {
		t.Fatalf("FromEnv = %+v", o)
	}
	if o.Output != "stderr" {
		t.Fatalf("default output = %q, want stderr", o.Output)
	}
}

func TestInitNamedAndContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "svc", Writer: &buf})

	Get().Info().Msg("root-msg")
	Named("jd").Info().Msg("named-msg")

	ctx := WithTask(WithRequest(context.Background(), "req-1"), "task-9")
	C(ctx).Info().Msg("ctx-msg")
	C(context.Background()).Info().Msg("bare-msg")

	out := buf.String()
	kit.MustContain(t, out, "root-msg")
	kit.MustContain(t, out, `"component":"jd"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"task_id":"task-9"`)
	kit.MustContain(t, out, `"service":"svc"`)
	kit.MustContain(t, out, "bare-msg")
}
