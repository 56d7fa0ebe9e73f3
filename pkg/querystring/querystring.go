// Package querystring rebuilds request query strings for links that must keep
// the filters already applied to a page.
package querystring

import (
	"net/url"

	"github.com/spf13/cast"
)

type Override struct {
	Key   string
	Value string
}

// Transform copies current, sets every override key to its single value and
// returns the encoded result. Keys not named by an override keep all of their
// values. The input is never modified.
func Transform(current url.Values, overrides ...Override) string {
	updated := make(url.Values, len(current)+len(overrides))
	for key, values := range current {
		updated[key] = append([]string(nil), values...)
	}
	for _, o := range overrides {
		updated.Set(o.Key, o.Value)
	}
	return updated.Encode()
}

// Pairs turns a flat key, value, key, value list into overrides. Values are
// stringified with cast so template callers can pass page numbers directly.
// A trailing key without a value is ignored.
func Pairs(kv ...interface{}) []Override {
	overrides := make([]Override, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		overrides = append(overrides, Override{
			Key:   cast.ToString(kv[i]),
			Value: cast.ToString(kv[i+1]),
		})
	}
	return overrides
}
