// sms-send asks the SMS gateway service to send one message and reports the
// gateway's answer. It talks to the gateway over the Redis bus configured
// through the same environment as the API:
//
//	REDIS_ADDR           Redis address, e.g. "localhost:6379"
//	SMS_GATEWAY_ADDRESS  bus address of the gateway (default "appsist:service:sms")
//
// There is no timeout: without a reply the command waits until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oggyb/sms-gateway-connector/internal/bus/redisbus"
	"github.com/oggyb/sms-gateway-connector/internal/config"
	"github.com/oggyb/sms-gateway-connector/internal/connector"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run sends one message and returns the process exit code. Everything it
// opens is closed before it returns.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sms-send", flag.ContinueOnError)
	fs.SetOutput(stderr)
	to := fs.String("to", "", "recipient phone number, e.g. +4916518375921")
	text := fs.String("text", "", "message text")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *to == "" {
		fmt.Fprintln(stderr, `usage: sms-send -to +NUMBER -text "message"`)
		return 2
	}

	cfg := config.New()

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	msgBus := redisbus.New(rdb, redisbus.Options{
		ReplyTTL:     cfg.Bus.ReplyTTL,
		PollInterval: cfg.Bus.PollInterval,
	})
	defer msgBus.Close()

	if err := msgBus.Ping(ctx); err != nil {
		fmt.Fprintf(stderr, "error: redis unreachable: %v\n", err)
		return 1
	}

	gateway := connector.New(msgBus, cfg.Gateway.Address)

	select {
	case err := <-gateway.SendMessageAsync(*to, *text):
		if err != nil {
			reportFailure(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, "sent")
		return 0
	case <-ctx.Done():
		fmt.Fprintln(stderr, "interrupted before the gateway replied")
		return 130
	}
}

func reportFailure(w io.Writer, err error) {
	var gwErr *connector.GatewayError
	if errors.As(err, &gwErr) {
		if detail, ok := gwErr.DetailText(); ok {
			fmt.Fprintf(w, "failed: %s\n", detail)
			return
		}
		fmt.Fprintf(w, "failed (status %q, no detail)\n", gwErr.Status)
		return
	}
	fmt.Fprintf(w, "failed: %v\n", err)
}
