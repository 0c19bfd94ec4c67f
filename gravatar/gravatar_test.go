package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	// md5("test@example.com") = 55502f40dc8b7c769880b10874abc9d0
	got := URL("test@example.com", 200)
	assert.Equal(t, "https://www.gravatar.com/avatar/55502f40dc8b7c769880b10874abc9d0?d=mm&r=pg&s=200", got)
}

func TestURLNormalizesEmail(t *testing.T) {
	assert.Equal(t, URL("test@example.com", 200), URL("  Test@Example.COM  ", 200))
}

func TestURLSize(t *testing.T) {
	assert.Contains(t, URL("test@example.com", 64), "s=64")
}
