package redis

const (
	// KeyRecents is the list of recent searches, newest first.
	KeyRecents = "skyseek:recents"
	// KeyPrefixQueryCount prefixes per-query hit counters.
	KeyPrefixQueryCount = "skyseek:querycount:"
)

// QueryCountKey returns the counter key for a query string.
func QueryCountKey(query string) string {
	return KeyPrefixQueryCount + query
}
