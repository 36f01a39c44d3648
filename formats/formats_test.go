package formats_test

import (
	"testing"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/formats"
)

func TestStandardFormats(t *testing.T) {
	cases := []struct {
		format string
		value  string
		ok     bool
	}{
		{"date-time", "2026-08-26T10:30:00Z", true},
		{"date-time", "2026-08-26", false},
		{"date", "2026-08-26", true},
		{"date", "26/08/2026", false},
		{"time", "10:30:00Z", true},
		{"time", "10:30", false},
		{"email", "dev@example.com", true},
		{"email", "not-an-email", false},
		{"hostname", "example.com", true},
		{"hostname", "-bad-.example", false},
		{"ipv4", "192.168.0.1", true},
		{"ipv4", "1.2.3.4.5", false},
		{"ipv4", "::1", false},
		{"ipv6", "::1", true},
		{"ipv6", "192.168.0.1", false},
		{"uri", "https://example.com/x", true},
		{"uri", "not a uri", false},
		{"uuid", "123e4567-e89b-12d3-a456-426614174000", true},
		{"uuid", "123e4567", false},
		{"regex", "^a+$", true},
		{"regex", "[", false},
	}

	e := keyrule.New()
	if err := formats.Register(e); err != nil {
		t.Fatalf("register: %v", err)
	}
	c := e.NewContext(map[string]any{})

	for _, tc := range cases {
		t.Run(tc.format+"/"+tc.value, func(t *testing.T) {
			report := e.FormatValidator(c, tc.format).Validate(c, tc.value)
			if report.OK() != tc.ok {
				t.Fatalf("%s %q: ok = %v, want %v", tc.format, tc.value, report.OK(), tc.ok)
			}
			if !tc.ok && report.Issues()[0].Code != keyrule.CodeInvalidFormat {
				t.Fatalf("format failures must use invalid_format")
			}
		})
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	e := keyrule.New()
	if err := formats.Register(e); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := formats.Register(e); err == nil {
		t.Fatalf("second register must collide")
	}
}

func TestNonStringInstanceIsIgnored(t *testing.T) {
	e := keyrule.New()
	if err := formats.Register(e); err != nil {
		t.Fatalf("register: %v", err)
	}
	c := e.NewContext(map[string]any{})
	if report := e.FormatValidator(c, "email").Validate(c, 42); !report.OK() {
		t.Fatalf("formats constrain strings only")
	}
}
