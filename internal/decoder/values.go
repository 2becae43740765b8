package decoder

import (
	"encoding/base64"
	"errors"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/inf.v0"

	"github.com/scan-io-git/scanio-parser/internal/dates"
	"github.com/scan-io-git/scanio-parser/internal/decimals"
	"github.com/scan-io-git/scanio-parser/internal/finding"
	"github.com/scan-io-git/scanio-parser/internal/vocabulary"
)

var errNegative = errors.New("must not be negative")

// readValue consumes the next value and converts it per the attribute kind.
// JSON null reports ok=false. A value that fails its codec is fully consumed
// before the FormatError is returned, so the walk can continue past it.
func readValue(c *cursor, attr *vocabulary.Attribute, scale inf.Scale) (finding.Value, bool, error) {
	raw, present, err := readScalar(c, attr.Name)
	if err != nil || !present {
		return finding.Value{}, false, err
	}

	switch attr.Kind {
	case vocabulary.String, vocabulary.LongString:
		return finding.StringValue(attr.Kind, raw), true, nil

	case vocabulary.Base64:
		text, err := decodeBase64(raw)
		if err != nil {
			return finding.Value{}, false, &FormatError{Field: attr.Name, Value: abbreviate(raw), Err: err}
		}
		return finding.StringValue(attr.Kind, text), true, nil

	case vocabulary.Integer:
		n, err := strconv.Atoi(raw)
		if err == nil && n < 0 {
			err = errNegative
		}
		if err != nil {
			return finding.Value{}, false, &FormatError{Field: attr.Name, Value: raw, Err: err}
		}
		return finding.IntValue(n), true, nil

	case vocabulary.Float:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return finding.Value{}, false, &FormatError{Field: attr.Name, Value: raw, Err: err}
		}
		return finding.FloatValue(float32(f)), true, nil

	case vocabulary.Date:
		t, err := dates.Decode(raw)
		if err != nil {
			return finding.Value{}, false, &FormatError{Field: attr.Name, Value: raw, Err: err}
		}
		return finding.DateValue(t), true, nil

	case vocabulary.Decimal:
		d, err := decimals.ParseNormalized(raw, scale)
		if err != nil {
			return finding.Value{}, false, &FormatError{Field: attr.Name, Value: raw, Err: err}
		}
		return finding.DecimalValue(d), true, nil

	case vocabulary.Enum:
		member, _ := attr.Enum.Match(raw)
		return finding.StringValue(attr.Kind, member), true, nil
	}
	return finding.StringValue(vocabulary.String, raw), true, nil
}

// readScalar returns the text of the next string, number or boolean.
func readScalar(c *cursor, field string) (string, bool, error) {
	c.tokens++
	var raw string
	switch c.next() {
	case jsoniter.NilValue:
		c.iter.ReadNil()
		return "", false, c.failure()
	case jsoniter.StringValue:
		raw = c.iter.ReadString()
	case jsoniter.NumberValue:
		raw = string(c.iter.ReadNumber())
	case jsoniter.BoolValue:
		raw = strconv.FormatBool(c.iter.ReadBool())
	case jsoniter.ObjectValue, jsoniter.ArrayValue:
		c.iter.Skip()
		return "", false, c.structure("expected scalar value for " + field)
	default:
		return "", false, c.structure("unexpected token for " + field)
	}
	if err := c.failure(); err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func decodeBase64(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		var rawErr error
		if b, rawErr = base64.RawStdEncoding.DecodeString(s); rawErr != nil {
			return "", err
		}
	}
	return string(b), nil
}

func abbreviate(s string) string {
	const max = 64
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
