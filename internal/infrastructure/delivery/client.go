package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/pizzeria-api/internal/application/fulfillment"
	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/pkg/logger"
)

var _ fulfillment.DeliveryPort = (*Client)(nil)

// Client cliente HTTP del servicio de domicilios. Todas las llamadas tienen
// timeout acotado: este servicio jamás debe frenar la toma de órdenes.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient construye el cliente con el timeout configurado.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type createDeliveryRequest struct {
	OrderID      string `json:"order_id"`
	Address      string `json:"direccion"`
	CustomerName string `json:"nombre_cliente"`
	CashierEmail string `json:"correo_cajero"`
}

// CreateDelivery registra la orden en el servicio de domicilios.
// Timeouts y fallos de conexión se reportan como ErrUpstreamUnavailable.
func (c *Client) CreateDelivery(ctx context.Context, req fulfillment.DeliveryRequest) error {
	body, err := json.Marshal(createDeliveryRequest{
		OrderID:      req.OrderID,
		Address:      req.Address,
		CustomerName: req.CustomerName,
		CashierEmail: req.CashierEmail,
	})
	if err != nil {
		return fmt.Errorf("marshal delivery request: %w", err)
	}

	endpoint := c.baseURL + "/ordenes"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delivery request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && (uerr.Timeout() || uerr.Temporary()) {
			return fmt.Errorf("domicilios: %w", domain.ErrUpstreamUnavailable)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("domicilios: %w", domain.ErrUpstreamUnavailable)
		}
		return fmt.Errorf("domicilios: %w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("order_id", req.OrderID).
			Msg("domicilios respondió con error")
		return fmt.Errorf("domicilios respondió %d", resp.StatusCode)
	}
	return nil
}
