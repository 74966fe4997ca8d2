package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Number is a float64 that decodes from a JSON number or a numeric string,
// since HTML form clients send quantities and years as text.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return n.parse(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("cannot decode %s into Number", raw)
	}
	*n = Number(f)
	return nil
}

func (n *Number) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("cannot decode %q into Number", s)
	}
	*n = Number(f)
	return nil
}

// UnmarshalBSONValue accepts every numeric BSON type plus legacy string values.
func (n *Number) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*n = 0
		return nil
	case bsontype.Double:
		var f float64
		if err := bson.UnmarshalValue(t, data, &f); err != nil {
			return err
		}
		*n = Number(f)
		return nil
	case bsontype.Int32, bsontype.Int64:
		var i int64
		if err := bson.UnmarshalValue(t, data, &i); err != nil {
			return err
		}
		*n = Number(i)
		return nil
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		return n.parse(s)
	default:
		return fmt.Errorf("cannot decode %s into Number", t)
	}
}

func (n Number) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(float64(n))
}

// Text is a string that also decodes from a JSON number, e.g. "year": 2.
type Text string

func (s *Text) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*s = ""
	case strings.HasPrefix(raw, `"`):
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Text(v)
	default:
		var f json.Number
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("cannot decode %s into Text", raw)
		}
		*s = Text(f.String())
	}
	return nil
}

func (s Text) String() string {
	return strings.TrimSpace(string(s))
}
