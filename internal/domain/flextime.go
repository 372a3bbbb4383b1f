package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// FlexTime is a time.Time that tolerates the timestamp shapes found in
// documents written by earlier versions of the system: native BSON datetimes,
// RFC3339 strings, and epoch-millisecond integers. Decoding happens once at
// the store boundary; any other shape is rejected rather than defaulted,
// since a guessed entry time would corrupt derived durations.
type FlexTime struct {
	time.Time
}

// NewFlexTime wraps t, normalized to UTC.
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t.UTC()}
}

// MarshalBSONValue always writes a native BSON datetime, so documents
// converge on one shape as they are rewritten.
func (t FlexTime) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(t.Time.UTC())
}

// UnmarshalBSONValue implements the tagged-union decode described above.
func (t *FlexTime) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	switch bt {
	case bson.TypeDateTime:
		millis, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("flextime: malformed datetime value")
		}
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	case bson.TypeString:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("flextime: malformed string value")
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("flextime: cannot parse %q as RFC3339: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil
	case bson.TypeInt64:
		millis, _, ok := bsoncore.ReadInt64(data)
		if !ok {
			return fmt.Errorf("flextime: malformed int64 value")
		}
		t.Time = time.UnixMilli(millis).UTC()
		return nil
	case bson.TypeNull:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("flextime: unsupported BSON type %s", bt)
	}
}
