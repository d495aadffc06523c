package scenario

import (
	"fmt"
	"time"
)

// Username derives a registration username from the given time. Repeated runs
// in different seconds register under distinct names, so re-running the
// scenario never collides with the account a previous run left behind.
func Username(t time.Time) string {
	return fmt.Sprintf("user_%d", t.Unix())
}
