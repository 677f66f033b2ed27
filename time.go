package treasury

import (
	"encoding/json"
	"time"

	"github.com/iov-one/treasury/errors"
)

// UnixTime represents a point in time as POSIX time with seconds precision.
// It is stored as a primitive int64 so that protobuf messages stay portable.
type UnixTime int64

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AddHours returns t moved by n hours. It fails instead of wrapping around
// when the result cannot be represented.
func (t UnixTime) AddHours(n uint64) (UnixTime, error) {
	const maxHours = (1<<63 - 1) / 3600
	if n > maxHours {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d hours", n)
	}
	secs := int64(n) * 3600
	if int64(t) > (1<<63-1)-secs {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d hours after %d", n, t)
	}
	return t + UnixTime(secs), nil
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// A number is the usual representation, a string is handy in configuration
// files.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// String returns the RFC3339 representation of this time.
func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}
