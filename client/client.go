package client

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/zrma/trollsmile/command"
	"github.com/zrma/trollsmile/logging"
	"github.com/zrma/trollsmile/pb"
)

func New(logger logging.Logger, target string) *Client {
	c := Client{logger: logger, target: target}
	return &c
}

type Client struct {
	logger logging.Logger
	target string

	conn *grpc.ClientConn
	pb.ConsoleClient
}

// Init sets up the connection. Extra options are applied after the defaults.
func (c *Client) Init(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			// keepalive settings - https://github.com/grpc/grpc/blob/master/doc/keepalive.md
			Time:                1 * time.Minute,
			Timeout:             10 * time.Second,
			PermitWithoutStream: true,
		}),
	}, opts...)

	conn, err := grpc.NewClient(c.target, opts...)
	if err != nil {
		return err
	}

	c.conn = conn
	c.ConsoleClient = pb.NewConsoleClient(conn)
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Send runs line on the remote console and returns what it printed. There is
// no deadline beyond ctx: a slow command holds the call open.
func (c *Client) Send(ctx context.Context, line string) ([]command.Payload, error) {
	start := time.Now()
	r, err := c.Dispatch(ctx, wrapperspb.String(line))
	if err != nil {
		return nil, err
	}

	payloads, err := pb.DecodePayloads(r)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(
		"api response succeed",
		"payloads", len(payloads),
		"elapsed", time.Since(start),
	)
	return payloads, nil
}
