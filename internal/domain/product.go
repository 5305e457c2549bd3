package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Category labels used by the catalog pages.
const (
	CategoryBundles    = "bundles"
	CategoryWheelbases = "wheelbases"
	CategoryWheels     = "wheels"
	CategoryPedals     = "pedals"
	CategoryAddons     = "addons"
)

// Product is a single catalog entry read from the product list.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       Price     `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
}

// ProductID identifies a product. The list may carry it as a number or a string.
type ProductID string

func (id *ProductID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Price is a product price. Numeric prices are shown with two decimals; a
// price given as text, such as "34 990", is shown as written.
type Price struct {
	Amount float64
	Text   string
}

func (p *Price) UnmarshalJSON(b []byte) error {
	*p = Price{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &p.Text); err != nil {
			return err
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(p.Text), 64); err == nil {
			p.Amount = v
		}
		return nil
	}
	if err := json.Unmarshal(b, &p.Amount); err != nil {
		return fmt.Errorf("product price: %w", err)
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Text != "" {
		return json.Marshal(p.Text)
	}
	return json.Marshal(p.Amount)
}

func (p Price) String() string {
	if p.Text != "" {
		return p.Text
	}
	return strconv.FormatFloat(p.Amount, 'f', 2, 64)
}
