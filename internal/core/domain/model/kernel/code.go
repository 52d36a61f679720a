package kernel

import (
	"strings"

	"github.com/google/uuid"
)

// NewCode returns a short human-facing reference such as "ORD-3F9A1C07B2".
// Codes are for display and search; identity is always the UUID.
func NewCode(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + raw[:10]
}
