package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// PairsToValues turns "key=value" strings into url.Values. Repeated keys accumulate.
func PairsToValues(pairs []string) (url.Values, error) {
	values := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		values.Add(strings.TrimSpace(key), value)
	}
	return values, nil
}
