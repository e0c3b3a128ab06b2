package storage

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"polimanage/internal/domain"
)

// fields reads typed values out of a Record. The first failure sticks in err
// and later reads become no-ops, so a mapper checks err once at the end.
type fields struct {
	entity string
	rec    Record
	err    error
}

func (f *fields) lookup(name string, required bool) (any, bool) {
	if f.err != nil {
		return nil, false
	}
	v, ok := f.rec[name]
	if !ok || v == nil {
		if required {
			f.err = &domain.MissingFieldError{Entity: f.entity, Field: name}
		}
		return nil, false
	}
	return v, true
}

func (f *fields) fail(name string, v any) {
	f.err = fmt.Errorf("%w: %s.%s has unsupported value of type %T", domain.ErrInvalidField, f.entity, name, v)
}

func (f *fields) int64(name string) int64 {
	v, ok := f.lookup(name, true)
	if !ok {
		return 0
	}
	n, ok := asInt64(v)
	if !ok {
		f.fail(name, v)
	}
	return n
}

func (f *fields) str(name string) string {
	v, ok := f.lookup(name, true)
	if !ok {
		return ""
	}
	s, ok := asString(v)
	if !ok {
		f.fail(name, v)
	}
	return s
}

func (f *fields) optStr(name string) *string {
	v, ok := f.lookup(name, false)
	if !ok {
		return nil
	}
	s, ok := asString(v)
	if !ok {
		f.fail(name, v)
		return nil
	}
	return &s
}

func (f *fields) bool(name string) bool {
	v, ok := f.lookup(name, true)
	if !ok {
		return false
	}
	b, ok := asBool(v)
	if !ok {
		f.fail(name, v)
	}
	return b
}

func (f *fields) decimal(name string) decimal.Decimal {
	v, ok := f.lookup(name, true)
	if !ok {
		return decimal.Zero
	}
	d, ok := asDecimal(v)
	if !ok {
		f.fail(name, v)
	}
	return d
}

// Administrative columns never fail a read: an unexpected shape falls back
// to the column default.

func (f *fields) softInt(name string, def int) int {
	v, ok := f.lookup(name, false)
	if !ok {
		return def
	}
	if n, ok := asInt64(v); ok {
		return int(n)
	}
	return def
}

func (f *fields) softStr(name, def string) string {
	v, ok := f.lookup(name, false)
	if !ok {
		return def
	}
	if s, ok := asString(v); ok {
		return s
	}
	return def
}

func (f *fields) softTime(name string) time.Time {
	v, ok := f.lookup(name, false)
	if !ok {
		return time.Time{}
	}
	t, _ := asTime(v)
	return t
}

// opaque renders an identifier of any storage type (uuid, integer, text) as a string.
func (f *fields) opaque(name string) *string {
	v, ok := f.lookup(name, false)
	if !ok {
		return nil
	}
	s, ok := asOpaque(v)
	if !ok {
		return nil
	}
	return &s
}

// asInt64 accepts the integer shapes the pgx and mysql drivers produce, plus
// text digits for the mysql text protocol.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int16:
		return int64(t), true
	case int8:
		return int64(t), true
	case int:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			return 0, false
		}
		return int64(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case []byte:
		return asInt64(string(t))
	case json.Number:
		return asInt64(string(t))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	case driver.Valuer:
		return fromValuer(t, asInt64)
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case driver.Valuer:
		return fromValuer(t, asString)
	}
	return "", false
}

// asBool also takes 0/1, which is how TINYINT(1) columns arrive from mysql.
func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case []byte:
		return asBool(string(t))
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return b, err == nil
	case driver.Valuer:
		return fromValuer(t, asBool)
	}
	if n, ok := asInt64(v); ok && (n == 0 || n == 1) {
		return n == 1, true
	}
	return false, false
}

// asDecimal covers NUMERIC columns: pgtype.Numeric is a driver.Valuer whose
// value is the decimal text, mysql hands out []byte.
func asDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, false
		}
		return *t, true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case []byte:
		return asDecimal(string(t))
	case json.Number:
		return asDecimal(string(t))
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case driver.Valuer:
		return fromValuer(t, asDecimal)
	}
	return decimal.Zero, false
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		return asTime(string(t))
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	case driver.Valuer:
		return fromValuer(t, asTime)
	}
	return time.Time{}, false
}

func asOpaque(v any) (string, bool) {
	switch t := v.(type) {
	case [16]byte:
		return uuid.UUID(t).String(), true
	case uuid.UUID:
		return t.String(), true
	case []byte:
		// BINARY(16) uuid columns arrive raw
		if len(t) == 16 && !utf8.Valid(t) {
			if id, err := uuid.FromBytes(t); err == nil {
				return id.String(), true
			}
		}
		return string(t), true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case driver.Valuer:
		return fromValuer(t, asOpaque)
	case fmt.Stringer:
		return t.String(), true
	}
	if n, ok := asInt64(v); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

func fromValuer[T any](v driver.Valuer, conv func(any) (T, bool)) (T, bool) {
	var zero T
	raw, err := v.Value()
	if err != nil || raw == nil {
		return zero, false
	}
	if _, again := raw.(driver.Valuer); again {
		return zero, false
	}
	return conv(raw)
}
