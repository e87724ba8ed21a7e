package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReference returns a human readable checkout reference such as
// MW-20261018-153000-042-1234.
func GenerateReference(now time.Time) string {
	now = now.UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf("MW-%s-%03d-%04d", datePart, millis, n.Int64())
}
