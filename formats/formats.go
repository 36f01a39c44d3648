// Package formats provides the common string-format checkers (date-time,
// email, ip addresses, uri, uuid, regex). They are registered through the
// public engine API like any caller-supplied format.
package formats

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	keyrule "github.com/keyrulehq/keyrule"
	"github.com/keyrulehq/keyrule/i18n"
)

// standard lists the built-in formats by name.
var standard = map[string]keyrule.FormatChecker{
	"date-time": checkerFunc("date-time", func(s string) bool {
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	}),
	"date": checkerFunc("date", func(s string) bool {
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	}),
	"time": checkerFunc("time", func(s string) bool {
		_, err := time.Parse("15:04:05Z07:00", s)
		return err == nil
	}),
	"email": checkerFunc("email", func(s string) bool {
		a, err := mail.ParseAddress(s)
		// ParseAddress accepts display names; a bare address must round-trip.
		return err == nil && a.Address == s
	}),
	"hostname": checkerFunc("hostname", isHostname),
	"ipv4": checkerFunc("ipv4", func(s string) bool {
		ip := net.ParseIP(s)
		return ip != nil && strings.Contains(s, ".") && ip.To4() != nil
	}),
	"ipv6": checkerFunc("ipv6", func(s string) bool {
		ip := net.ParseIP(s)
		return ip != nil && strings.Contains(s, ":")
	}),
	"uri": checkerFunc("uri", func(s string) bool {
		u, err := url.Parse(s)
		return err == nil && u.IsAbs()
	}),
	"uuid": checkerFunc("uuid", isUUID),
	"regex": checkerFunc("regex", func(s string) bool {
		_, err := regexp.Compile(s)
		return err == nil
	}),
}

// Register installs the standard formats into e.
func Register(e *keyrule.Engine) error {
	for name, fc := range standard {
		if err := e.RegisterFormat(name, fc); err != nil {
			return err
		}
	}
	return nil
}

// checkerFunc lifts a predicate into a FormatChecker producing the uniform
// invalid_format diagnostic.
func checkerFunc(name string, valid func(string) bool) keyrule.FormatChecker {
	return keyrule.FormatCheckerFunc(func(c *keyrule.Context, value string) keyrule.Report {
		if valid(value) {
			return keyrule.ReportOK
		}
		return keyrule.FailWith(c.Issue("format", keyrule.CodeInvalidFormat,
			i18n.T(keyrule.CodeInvalidFormat, nil), "format", name))
	})
}

var hostnameLabel = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?$`)

func isHostname(s string) bool {
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	s = strings.TrimSuffix(s, ".")
	for _, label := range strings.Split(s, ".") {
		if !hostnameLabel.MatchString(label) {
			return false
		}
	}
	return true
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isUUID(s string) bool { return uuidPattern.MatchString(s) }
