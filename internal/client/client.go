package client

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// Client performs the connect phase of an HTTP request to a single target.
// Nothing is written on the connection; it is closed as soon as it opens.
type Client struct {
	addr    string
	timeout time.Duration
	dialer  proxy.Dialer
}

func New(host string, port int, timeout time.Duration) *Client {
	d := &net.Dialer{Timeout: timeout}
	return &Client{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		timeout: timeout,
		// SOCKS proxies from ALL_PROXY/NO_PROXY; direct otherwise.
		dialer: proxy.FromEnvironmentUsing(d),
	}
}

func (c *Client) Addr() string { return c.addr }
func (c *Client) URL() string  { return "http://" + c.addr }

// Connect opens and closes one TCP connection to the target.
// DNS failures, refusals and timeouts are all returned as errors.
func (c *Client) Connect(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		conn net.Conn
		err  error
	)
	if cd, ok := c.dialer.(proxy.ContextDialer); ok {
		conn, err = cd.DialContext(ctx, "tcp", c.addr)
	} else {
		conn, err = c.dialer.Dial("tcp", c.addr)
	}
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	_ = conn.Close()
	return nil
}
