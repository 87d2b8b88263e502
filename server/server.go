package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/zrma/trollsmile/command"
	"github.com/zrma/trollsmile/logging"
	"github.com/zrma/trollsmile/pb"
	"github.com/zrma/trollsmile/server/session"
)

// Server is a remote console. Every Dispatch call becomes a message on a
// single queue that the bot's loop drains, so remote lines obey the same
// one-at-a-time ordering as the local console.
type Server struct {
	logger   logging.Logger
	grpc     *grpc.Server
	messages chan *command.Message
	quit     chan struct{}
	stop     sync.Once
	count    int64
}

func New(logger logging.Logger, opts ...grpc.ServerOption) *Server {
	s := &Server{
		logger:   logger,
		messages: make(chan *command.Message),
		quit:     make(chan struct{}),
	}

	opts = append([]grpc.ServerOption{
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             30 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.logCalls),
	}, opts...)
	s.grpc = grpc.NewServer(opts...)
	pb.RegisterConsoleServer(s.grpc, s)

	return s
}

// Next implements command.Source.
func (s *Server) Next(ctx context.Context) (*command.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.quit:
		return nil, net.ErrClosed
	case msg := <-s.messages:
		return msg, nil
	}
}

func (s *Server) Dispatch(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	sess := session.New()
	msg := command.NewMessage(req.GetValue(), sess)
	msg.SpanContext = trace.SpanContextFromContext(ctx)

	select {
	case s.messages <- msg:
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	case <-s.quit:
		return nil, status.Error(codes.Unavailable, "console is shutting down")
	}

	select {
	case <-sess.Done():
	case <-ctx.Done():
		return nil, status.FromContextError(ctx.Err()).Err()
	case <-s.quit:
		return nil, status.Error(codes.Unavailable, "console is shutting down")
	}

	list, err := pb.EncodePayloads(sess.Get())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return list, nil
}

// Serve accepts remote lines on lis and runs bot over them until ctx is done
// or the listener fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener, bot *command.Bot) error {
	s.logger.Info(
		"listening",
		"addr", lis.Addr().String(),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx, s)
	})
	g.Go(func() error {
		return s.grpc.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Stop()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func (s *Server) Stop() {
	s.stop.Do(func() {
		close(s.quit)
		s.grpc.GracefulStop()
	})
}

func (s *Server) logCalls(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	addr := "unknown"
	if p, ok := peer.FromContext(ctx); ok {
		addr = p.Addr.String()
	}
	count := atomic.AddInt64(&s.count, 1)

	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Err(
			"call failed",
			"method", info.FullMethod,
			"addr", addr,
			"count", count,
			"err", err,
		)
		return resp, err
	}

	s.logger.Info(
		"call",
		"method", info.FullMethod,
		"addr", addr,
		"count", count,
		"elapsed", time.Since(start),
	)
	return resp, nil
}
