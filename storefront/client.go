package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"greencart/models"
)

// Client is a thin REST client for the storefront API. Every call is a
// single request/response round trip; failures surface as errors and are
// never retried.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope mirrors the server's {success, message, ...payload} responses.
type envelope struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Token     string           `json:"token"`
	User      *models.User     `json:"user"`
	Product   *models.Product  `json:"product"`
	Products  []models.Product `json:"products"`
	Addresses []models.Address `json:"addresses"`
	Address   *models.Address  `json:"address"`
	Order     *models.Order    `json:"order"`
	Orders    []models.Order   `json:"orders"`
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Message == "" {
			env.Message = resp.Status
		}
		return &env, fmt.Errorf("%s", env.Message)
	}
	return &env, nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/user/register", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	c.Token = env.Token
	return env.User, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/user/login", map[string]string{
		"email": email, "password": password,
	})
	if err != nil {
		return nil, err
	}
	c.Token = env.Token
	return env.User, nil
}

// Logout invalidates the session server-side and drops the token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/user/logout", nil)
	c.Token = ""
	return err
}

func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/product/list", nil)
	if err != nil {
		return nil, err
	}
	return env.Products, nil
}

func (c *Client) FetchProduct(ctx context.Context, id string) (*models.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/product/id?id="+url.QueryEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return env.Product, nil
}

func (c *Client) FetchAddresses(ctx context.Context) ([]models.Address, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/address/get", map[string]string{})
	if err != nil {
		return nil, err
	}
	return env.Addresses, nil
}

func (c *Client) AddAddress(ctx context.Context, addr models.Address) (*models.Address, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/address/add", map[string]any{"address": addr})
	if err != nil {
		return nil, err
	}
	return env.Address, nil
}

// PlaceOrderCOD submits line items and an address reference; the server
// computes the amount.
func (c *Client) PlaceOrderCOD(ctx context.Context, items []models.OrderItem, addressID string) (*models.Order, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/order/cod", map[string]any{
		"items":       items,
		"address":     addressID,
		"paymentType": "COD",
	})
	if err != nil {
		return nil, err
	}
	return env.Order, nil
}

func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/order/user", nil)
	if err != nil {
		return nil, err
	}
	return env.Orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) (*models.Order, error) {
	env, err := c.do(ctx, http.MethodPut, "/api/order/cancel", map[string]string{"orderId": orderID})
	if err != nil {
		return nil, err
	}
	return env.Order, nil
}
