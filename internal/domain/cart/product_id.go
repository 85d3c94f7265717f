package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ProductID identifies a catalog product. The catalog supplies it as either a
// JSON number or a JSON string and the cart keeps whichever form it was given:
// the numeric id 7 and the string id "7" are different products.
type ProductID struct {
	value   string
	numeric bool
}

// NumericProductID returns a numeric product id
func NumericProductID(n int64) ProductID {
	return ProductID{value: strconv.FormatInt(n, 10), numeric: true}
}

// StringProductID returns a string product id
func StringProductID(s string) ProductID {
	return ProductID{value: s}
}

// ParseProductID interprets user input. A canonical base-10 integer becomes a
// numeric id (the form the catalog API uses), anything else a string id.
func ParseProductID(raw string) ProductID {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil && strconv.FormatInt(n, 10) == raw {
		return ProductID{value: raw, numeric: true}
	}
	return StringProductID(raw)
}

// String returns the id's text
func (p ProductID) String() string {
	return p.value
}

// IsNumeric reports whether the id is carried as a JSON number
func (p ProductID) IsNumeric() bool {
	return p.numeric
}

// IsZero reports whether the id is empty
func (p ProductID) IsZero() bool {
	return p.value == ""
}

// Int64 returns the numeric value of a numeric id
func (p ProductID) Int64() (int64, bool) {
	if !p.numeric {
		return 0, false
	}
	n, err := strconv.ParseInt(p.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON writes numeric ids as numbers and string ids as strings
func (p ProductID) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.value), nil
	}
	return json.Marshal(p.value)
}

// UnmarshalJSON accepts a JSON number or a JSON string
func (p *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("product id cannot be null")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = StringProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("product id must be a number or a string: %w", err)
	}
	*p = ProductID{value: canonicalNumber(n), numeric: true}
	return nil
}

// canonicalNumber makes 7, 7.0 and 7e0 the same id
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := n.Float64(); err == nil {
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return n.String()
}
