package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductID is the opaque, server-assigned product identifier. It keeps the raw
// scalar text so numeric and string ids survive a decode/encode round trip.
type ProductID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers and everything else as strings.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if json.Valid([]byte(id)) {
		var n json.Number
		if err := json.Unmarshal([]byte(id), &n); err == nil {
			return []byte(id), nil
		}
	}
	return json.Marshal(string(id))
}

func (id ProductID) String() string {
	return string(id)
}

// Product is a product as returned by the backend API.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
}

// CreateProductRequest is the payload sent to POST /products. Quantity is nil
// when the form text did not parse as an integer and is sent as JSON null.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity"`
}
