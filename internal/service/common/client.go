//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	api "github.com/Snorps/better-medical-alerts/internal/api/grpc/alerts"
	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/domain/alert"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	"github.com/Snorps/better-medical-alerts/internal/snapshot"
)

// Client wraps the gRPC AlertService client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the alert server.
	conn *grpc.ClientConn
	// api is the AlertService client.
	api api.AlertServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errRosterRequired is returned when Evaluate is called without a roster.
	errRosterRequired = errors.New("roster must be provided")
)

// Dial establishes a gRPC connection to the alert server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alert server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewAlertServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Evaluate sends the roster to the server and returns its report.
func (c *Client) Evaluate(ctx context.Context, roster *health.Roster) (*alert.Report, error) {
	if roster == nil {
		return nil, errRosterRequired
	}

	request, err := snapshot.EncodeRoster(roster)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.Evaluate(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("evaluate roster: %w", err)
	}

	report, err := snapshot.DecodeReport(response)
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

// GetReport retrieves the report of the last watched snapshot.
// It returns alert.ErrNoReport when the server has not evaluated one yet.
func (c *Client) GetReport(ctx context.Context) (*alert.Report, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetReport(callCtx, new(emptypb.Empty))
	if status.Code(err) == codes.NotFound {
		return nil, alert.ErrNoReport
	}

	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	report, err := snapshot.DecodeReport(response)
	if err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
