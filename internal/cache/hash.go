package cache

import (
	"crypto/md5"
	"encoding/hex"
)

// KeyPrefix is prepended to every bundle cache key
const KeyPrefix = "highlight_"

// Key creates the cache key for a bundle.
// The key is based on:
// - md5 of the module version summary
// - core version
//
// The summary must already be built from a normalized module set so that the
// key does not depend on the order modules were requested in.
func Key(summary, coreVersion string) string {
	sum := md5.Sum([]byte(summary))
	return KeyPrefix + hex.EncodeToString(sum[:]) + "_" + coreVersion
}
