package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"art-shop/internal/data/entity"
	"art-shop/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrRejected means the endpoint answered with a non-2xx status.
	ErrRejected = errors.New("order endpoint rejected the order")
	// ErrTimeout means no answer arrived within the configured timeout.
	ErrTimeout = errors.New("order endpoint timed out")
)

// OrderSubmitter sends an order to the backend. Any error means the order
// was not accepted.
type OrderSubmitter interface {
	Submit(ctx context.Context, order *entity.Order) error
}

const tokenTTL = 5 * time.Minute

type orderGateway struct {
	endpoint string
	secret   string
	client   *http.Client
	timeout  time.Duration
	log      *zap.Logger
}

// NewOrderGateway posts orders to APIURL + /api/orders. A zero timeout
// falls back to 10 seconds.
func NewOrderGateway(config utils.OrderConfig, client *http.Client, log *zap.Logger) OrderSubmitter {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{}
	}
	return &orderGateway{
		endpoint: strings.TrimRight(config.APIURL, "/") + "/api/orders",
		secret:   config.Secret,
		client:   client,
		timeout:  timeout,
		log:      log.With(zap.String("gateway", "order")),
	}
}

func (g *orderGateway) Submit(ctx context.Context, order *entity.Order) error {
	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.secret != "" {
		token, err := utils.SignOrderToken(g.secret, order.Customer.Email, order.Total, tokenTTL, time.Now())
		if err != nil {
			return fmt.Errorf("sign order token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
		}
		return fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()
	// body tidak dipakai, cukup dikuras supaya koneksi bisa dipakai ulang
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	g.log.Debug("Order endpoint answered",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: server returned %d", ErrRejected, resp.StatusCode)
	}
	return nil
}
