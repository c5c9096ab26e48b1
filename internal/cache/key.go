package cache

import (
	"fmt"
	"strings"
)

// batchKey builds the memoization key for one (community, limit) pair.
// Community names are case-insensitive on Reddit, so the key is lower-cased.
func batchKey(community string, limit int) string {
	return fmt.Sprintf("aura:analysis:%s:%d", strings.ToLower(strings.TrimSpace(community)), limit)
}
