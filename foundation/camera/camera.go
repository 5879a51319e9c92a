// Package camera receives video frames from the remote camera host over a
// length-prefixed TCP stream: a 4-byte big-endian payload size followed by the
// encoded frame bytes.
package camera

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

const (
	dialTimeout = 10 * time.Second

	// maxFrameSize rejects corrupt size headers before allocating.
	maxFrameSize = 16 << 20
)

var ErrNotConnected = errors.New("camera: not connected")

type Frame struct {
	Data  []byte
	Error error
}

type Client struct {
	addr string

	mu   sync.Mutex
	conn net.Conn
}

func New(addr string) *Client {
	return &Client{
		addr: addr,
	}
}

func (c *Client) Connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("camera: connect %s: %w", c.addr, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
	}
	c.conn = conn

	return nil
}

// ReceiveFrame blocks until one full frame arrives. Any error is a transport
// break: the caller decides whether to redial, it is never fatal here.
func (c *Client) ReceiveFrame() ([]byte, error) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return nil, ErrNotConnected
	}

	var header [4]byte
	if _, err := io.ReadFull(conn, header[:]); err != nil {
		return nil, fmt.Errorf("camera: read size header: %w", err)
	}

	size := binary.BigEndian.Uint32(header[:])
	if size == 0 || size > maxFrameSize {
		return nil, fmt.Errorf("camera: invalid frame size %d", size)
	}

	frame := make([]byte, size)
	if _, err := io.ReadFull(conn, frame); err != nil {
		return nil, fmt.Errorf("camera: read frame payload: %w", err)
	}

	return frame, nil
}

// Stream reads frames until the context is cancelled or the transport breaks.
// The final message before the channel closes carries the break error.
func (c *Client) Stream(ctx context.Context) <-chan Frame {
	frameCh := make(chan Frame, 1)

	go func() {
		defer close(frameCh)

		for {
			data, err := c.ReceiveFrame()
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				frameCh <- Frame{Error: err}
				return
			}

			select {
			case frameCh <- Frame{Data: data}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return frameCh
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil
	return err
}
