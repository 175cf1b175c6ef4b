package membership

import "fmt"

// CustomIDPrefix is the prefix of every human-facing client identifier.
const CustomIDPrefix = "GS"

// NextCustomID formats the display identifier for the client following the
// last assigned sequence number: GS001, GS002, ... Sequence numbers are never
// reused. Callers must obtain lastAssignedSequence atomically with the insert
// that consumes the result.
func NextCustomID(lastAssignedSequence int64) string {
	return fmt.Sprintf("%s%03d", CustomIDPrefix, lastAssignedSequence+1)
}
