// Package config reads application settings from prefixed environment variables.
// Required values panic through the logger; optional values warn and fall back
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"maintkpi/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("CORE_API_")
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for key
func (c Conf) Key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.Key(key))) }

func (c Conf) invalid(key, value, want string, def any) {
	logger.Get().Warn().Str("key", c.Key(key)).Str("value", value).Interface("default", def).
		Msgf("invalid %s; using default", want)
}

// MustString returns the value of key and panics when it is unset
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MustPort returns ":<port>" for a required port in 1..65535
func (c Conf) MustPort(key string) string {
	v := c.MustString(key)
	if p, err := strconv.Atoi(v); err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + v
}

// MayString returns the value of key or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the integer value of key or def
func (c Conf) MayInt(key string, def int) int {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.invalid(key, v, "int", def)
		return def
	}
	return n
}

// MayBool returns the boolean value of key or def
func (c Conf) MayBool(key string, def bool) bool {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.invalid(key, v, "bool", def)
		return def
	}
	return b
}

// MayDuration returns the duration value of key (250ms, 2s, 1h) or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		c.invalid(key, v, "duration", def)
		return def
	}
	return d
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the lowercased value of key when it is one of allowed, def when unset,
// and panics on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
