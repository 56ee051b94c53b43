// Package remote implements the HTTP client for the remote customer
// registry. It satisfies store.Directory; callers decide how to handle
// failures, the client just reports them.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkoren/stash/internal/model"
)

// Client talks to a remote customer directory over JSON/HTTP.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a directory client for the given base URL. token may be
// empty for unauthenticated registries.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// customerDTO is the registry's wire shape. Decimal fields travel as JSON
// numbers or strings; decimal.Decimal accepts both.
type customerDTO struct {
	ID           int64  `json:"id,omitempty"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	Notes        string `json:"notes,omitempty"`

	RatePerM3              *decimal.Decimal `json:"rate_per_m3,omitempty"`
	PrepCostPerUnit        *decimal.Decimal `json:"prep_cost_per_unit,omitempty"`
	FulfillmentCostPerUnit *decimal.Decimal `json:"fulfillment_cost_per_unit,omitempty"`
}

func toDTO(c model.Customer) customerDTO {
	dto := customerDTO{
		Email:        c.Email,
		Name:         c.Name,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Company:      c.Company,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		County:       c.County,
		State:        c.State,
		PostalCode:   c.PostalCode,
		Country:      c.Country,
		Notes:        c.Notes,
	}
	if c.RatePerM3.Valid {
		d := c.RatePerM3.Decimal
		dto.RatePerM3 = &d
	}
	if c.PrepCostPerUnit.Valid {
		d := c.PrepCostPerUnit.Decimal
		dto.PrepCostPerUnit = &d
	}
	if c.FulfillmentCostPerUnit.Valid {
		d := c.FulfillmentCostPerUnit.Decimal
		dto.FulfillmentCostPerUnit = &d
	}
	return dto
}

func fromDTO(dto customerDTO) model.Customer {
	c := model.Customer{
		Email:        model.NormalizeEmail(dto.Email),
		Name:         dto.Name,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Phone:        dto.Phone,
		Company:      dto.Company,
		AddressLine1: dto.AddressLine1,
		AddressLine2: dto.AddressLine2,
		City:         dto.City,
		County:       dto.County,
		State:        dto.State,
		PostalCode:   dto.PostalCode,
		Country:      dto.Country,
		Notes:        dto.Notes,
		BackendID:    dto.ID,
	}
	if dto.RatePerM3 != nil {
		c.RatePerM3 = decimal.NullDecimal{Decimal: *dto.RatePerM3, Valid: true}
	}
	if dto.PrepCostPerUnit != nil {
		c.PrepCostPerUnit = decimal.NullDecimal{Decimal: *dto.PrepCostPerUnit, Valid: true}
	}
	if dto.FulfillmentCostPerUnit != nil {
		c.FulfillmentCostPerUnit = decimal.NullDecimal{Decimal: *dto.FulfillmentCostPerUnit, Valid: true}
	}
	return c
}

// FetchCustomers downloads the full customer list from the registry.
func (c *Client) FetchCustomers(ctx context.Context) ([]model.Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/customers/", nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching customers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching customers: unexpected status %d", resp.StatusCode)
	}

	var dtos []customerDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decoding customers: %w", err)
	}

	customers := make([]model.Customer, len(dtos))
	for i, dto := range dtos {
		customers[i] = fromDTO(dto)
	}
	return customers, nil
}

// SubmitCustomer registers a customer with the remote directory and returns
// it with the backend-assigned id.
func (c *Client) SubmitCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	body, err := json.Marshal(toDTO(customer))
	if err != nil {
		return model.Customer{}, fmt.Errorf("encoding customer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/customers/", bytes.NewReader(body))
	if err != nil {
		return model.Customer{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return model.Customer{}, fmt.Errorf("submitting customer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return model.Customer{}, fmt.Errorf("submitting customer: unexpected status %d", resp.StatusCode)
	}

	var dto customerDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return model.Customer{}, fmt.Errorf("decoding customer: %w", err)
	}
	return fromDTO(dto), nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
