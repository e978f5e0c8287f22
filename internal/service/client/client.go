package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/oshokin/desk-planner/internal/api/grpc/desk"
	"github.com/oshokin/desk-planner/internal/config"
	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// Client wraps the DeskLayoutService client with domain types.
type Client struct {
	// conn is the underlying gRPC connection.
	conn *grpc.ClientConn
	// api is the DeskLayoutService stub.
	api *api.DeskLayoutClient

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

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the desk server at address.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial desk server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewDeskLayoutClient(conn),
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

// CalculateDeskLayout asks the server to arrange people.
func (c *Client) CalculateDeskLayout(ctx context.Context, people []desk.Person) ([]desk.Person, error) {
	req, err := api.EncodePeople(people)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.CalculateDeskLayout(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("calculate desk layout: %w", err)
	}

	arranged, err := api.DecodePeople(resp)
	if err != nil {
		return nil, fmt.Errorf("decode desk layout: %w", err)
	}

	return arranged, nil
}

// CheckOrder asks the server to evaluate the row.
// Constraint violations come back as *desk.TeamSplitError or *desk.AdjacencyError.
func (c *Client) CheckOrder(ctx context.Context, people []desk.Person) (int, error) {
	req, err := api.EncodePeople(people)
	if err != nil {
		return 0, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.CheckOrder(callCtx, req)
	if err != nil {
		if violation := api.ViolationFromStatus(err); violation != nil {
			return 0, violation
		}

		return 0, fmt.Errorf("check order: %w", err)
	}

	return api.DecodeScore(resp), nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise returns the original context with a no-op cancel function.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
