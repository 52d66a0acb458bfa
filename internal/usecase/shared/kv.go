package shared

import (
	"context"
	"encoding/json"

	"parking-booking-gateway/internal/pkg/errs"
)

// GetJSON decodes the value under key into out. A missing key reports false
// with no error; a malformed value is an error.
func GetJSON(ctx context.Context, store SessionStore, namespace, key string, out any) (bool, error) {
	raw, ok, err := store.Get(ctx, namespace, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, errs.Wrapf(err, "decoding %s", key)
	}
	return true, nil
}

func SetJSON(ctx context.Context, store SessionStore, namespace, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errs.Wrapf(err, "encoding %s", key)
	}
	return store.Set(ctx, namespace, key, string(raw))
}
