package query

import "strings"

// DefaultDomains is the allow-list used when no domains are configured.
var DefaultDomains = []string{
	"reddit.com",
	"stackoverflow.com",
	"wikipedia.org",
	"medium.com",
	"github.com",
	"dev.to",
}

// Build appends an OR-combination of site: filters for domains to the user
// query, e.g. `go generics (site:a.com OR site:b.org)`.
func Build(userQuery string, domains []string) string {
	if len(domains) == 0 {
		return userQuery
	}
	parts := make([]string, 0, len(domains))
	for _, d := range domains {
		parts = append(parts, "site:"+d)
	}
	return userQuery + " (" + strings.Join(parts, " OR ") + ")"
}
