package store

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// KV is the shared local key/value namespace backing the event cache and the
// persisted calendar selection state. Keys are namespaced by their leading
// segment, e.g. "cal-events-cache:<fingerprint>" or "gts-calendar-filters".
type KV struct {
	d        *diskv.Diskv
	basePath string
}

// Load opens the diskv tree under the configured base path.
func Load(cfg Config) (*KV, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &KV{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// Read returns the raw value for key, or an error if it does not exist.
func (kv *KV) Read(key string) ([]byte, error) {
	return kv.d.Read(key)
}

// Write stores the raw value under key.
func (kv *KV) Write(key string, data []byte) error {
	return kv.d.Write(key, data)
}

// Erase removes key. Erasing a missing key is an error from diskv; callers
// that treat deletion as best-effort should ignore it.
func (kv *KV) Erase(key string) error {
	return kv.d.Erase(key)
}

// Keys lists every stored key carrying the given prefix. An empty prefix
// lists everything.
func (kv *KV) Keys(ctx context.Context, prefix string) []string {
	keys := make([]string, 0)
	for key := range kv.d.Keys(ctx.Done()) {
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

// BasePath reports the directory backing the store.
func (kv *KV) BasePath() string {
	return kv.basePath
}

// Keys shaped like "<namespace>:<rest>" map to <namespace>/<encoded rest>;
// bare keys land under a shared bucket. The rest is base64url-encoded since
// fingerprints carry user-provided search text.
const bareBucket = "keys"

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{
			Path:     []string{bareBucket},
			FileName: base64.RawURLEncoding.EncodeToString([]byte(s)),
		}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: base64.RawURLEncoding.EncodeToString([]byte(parts[1])),
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	decoded, err := base64.RawURLEncoding.DecodeString(pathKey.FileName)
	if err != nil {
		return pathKey.FileName
	}
	if len(pathKey.Path) == 1 && pathKey.Path[0] == bareBucket {
		return string(decoded)
	}
	return strings.Join(pathKey.Path, ":") + ":" + string(decoded)
}
