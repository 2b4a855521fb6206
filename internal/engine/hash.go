package engine

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strconv"
)

// fingerprint returns a stable FNV-1a hash of v's canonical JSON
// encoding. encoding/json orders struct fields by declaration and map
// keys lexically, so the same value always produces the same hash within
// one running system. Used for schedule change detection and de-dup keys.
func fingerprint(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializing for fingerprint: %w", err)
	}

	h := fnv.New64a()
	h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16), nil
}
