package ports

import "time"

// Clock abstracts the current time so return-window checks and automatic
// delivery confirmation can be tested deterministically.
type Clock interface {
	Now() time.Time
}
