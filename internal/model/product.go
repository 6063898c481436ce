// Package model holds the domain entities stored in the key-value store.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/deppfellow/product-cache/internal/lib/codec"
	"github.com/deppfellow/product-cache/internal/validation"
)

// ProductEntity names products in store errors and log fields.
const ProductEntity = "product"

// Product is the single domain entity: an integer id plus any number of
// additional JSON attributes, which are kept verbatim (compacted).
//
// Its JSON form always starts with "id", followed by the attributes in
// ascending key order:
//
//	{"id":1,"color":"red","name":"a"}
type Product struct {
	ID         int64
	Attributes map[string]json.RawMessage

	hasID bool
}

// NewProduct builds a Product with the given id and no attributes.
func NewProduct(id int64) *Product {
	return &Product{ID: id, hasID: true}
}

// Key is the store key the product lives under: the decimal form of its id.
func (p *Product) Key() string {
	return ProductKey(p.ID)
}

// ProductKey returns the store key of the product with the given id.
func ProductKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Validate reports a missing id. Attributes are free-form.
func (p *Product) Validate() error {
	if !p.hasID {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "is required"},
		}
	}
	return nil
}

// UnmarshalJSON accepts any JSON object. "id" must be an integer or absent;
// absence (or null) is reported by Validate, not here.
func (p *Product) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := codec.JSON.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("product must be a JSON object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("product must be a JSON object")
	}

	product := Product{}
	if raw, ok := fields["id"]; ok {
		delete(fields, "id")
		if !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			if err := codec.JSON.Unmarshal(raw, &product.ID); err != nil {
				return fmt.Errorf("product id must be an integer: %w", err)
			}
			product.hasID = true
		}
	}

	if len(fields) > 0 {
		product.Attributes = make(map[string]json.RawMessage, len(fields))
		for key, raw := range fields {
			var compacted bytes.Buffer
			if err := json.Compact(&compacted, raw); err != nil {
				return fmt.Errorf("product attribute %q: %w", key, err)
			}
			product.Attributes[key] = compacted.Bytes()
		}
	}

	*p = product
	return nil
}

// MarshalJSON writes id first, then the attributes sorted by key.
func (p Product) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	buf.WriteString(strconv.FormatInt(p.ID, 10))

	keys := make([]string, 0, len(p.Attributes))
	for key := range p.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		encodedKey, err := codec.JSON.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(encodedKey)
		buf.WriteByte(':')

		value := p.Attributes[key]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
