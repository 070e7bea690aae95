package rappi

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// apiOrder is an order in the GET /orders response
type apiOrder struct {
	ID          flexString      `json:"id"`
	Status      apiStatus       `json:"status"`
	Customer    apiCustomer     `json:"customer"`
	Items       []apiItem       `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   *time.Time      `json:"createdAt"`
}

type apiCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type apiItem struct {
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	SyncProductID string          `json:"syncProductId"`
	EAN           string          `json:"ean"`
}

// apiStatus accepts both "successful" and {"id":4,"name":"successful"}
type apiStatus struct {
	Name string
}

func (s *apiStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		s.Name = obj.Name
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, &s.Name)
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(strings.TrimSpace(n.String()))
	return nil
}

// ordersEnvelope covers APIs that wrap the list in {"orders":[...]}
type ordersEnvelope struct {
	Orders []apiOrder `json:"orders"`
}
