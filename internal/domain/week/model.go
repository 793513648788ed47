package week

import "time"

// Week is one contest round. StartDate is the boundary used for
// current-week resolution, not for pick locking (locking follows the
// earliest game of the week).
type Week struct {
	ID        int
	StartDate time.Time
}
