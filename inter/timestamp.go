package inter

import (
	"time"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
)

// Timestamp is a UNIX nanoseconds timestamp.
type Timestamp uint64

// Bytes gets the byte representation of the timestamp.
func (t Timestamp) Bytes() []byte {
	return bigendian.Uint64ToBytes(uint64(t))
}

// FromUnix converts UNIX seconds into a Timestamp.
func FromUnix(t int64) Timestamp {
	return Timestamp(t * int64(time.Second))
}

// Unix returns t as a UNIX time in seconds.
func (t Timestamp) Unix() int64 {
	return int64(t) / int64(time.Second)
}

// Time returns t as a local time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t)/int64(time.Second), int64(t)%int64(time.Second))
}
