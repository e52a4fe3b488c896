package user

import (
	"strings"

	"github.com/google/uuid"
)

// NewEmployeeIdentifier generates an identifier like "EMP3FA9C1".
// Uniqueness is enforced by the database constraint; collisions on six
// hex characters surface as a conflict and the caller retries.
func NewEmployeeIdentifier() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "EMP" + raw[:6]
}
