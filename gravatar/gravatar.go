// Package gravatar builds Gravatar avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// URL returns the Gravatar URL for the email: given size, PG rating and the
// "mystery man" default image for addresses without a Gravatar account.
func URL(email string, size int) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	q := url.Values{}
	q.Set("s", fmt.Sprintf("%d", size))
	q.Set("r", "pg")
	q.Set("d", "mm")

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?%s", hash, q.Encode())
}
