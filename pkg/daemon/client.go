package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// ErrRemote wraps an error message sent back by the console.
var ErrRemote = errors.New("console rejected input")

// Client is a remote-control connection to a running console
type Client struct {
	conn     net.Conn
	clientID string
	scanner  *bufio.Scanner
	sendMu   sync.Mutex
}

// Dial connects to the console socket, retrying until ctx is done.
func Dial(ctx context.Context, socketPath, clientID string) (*Client, error) {
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "unix", socketPath)
		if err == nil {
			scanner := bufio.NewScanner(conn)
			scanner.Buffer(make([]byte, 64*1024), 1024*1024)
			return &Client{conn: conn, clientID: clientID, scanner: scanner}, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to console: %w", err)
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// Close ends the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// Subscribe asks for state updates. The console answers with its current
// state straight away if it has one.
func (c *Client) Subscribe() error {
	return c.send(Message{Type: MsgSubscribe, ClientID: c.clientID})
}

// Unsubscribe tells the console to drop this client.
func (c *Client) Unsubscribe() error {
	return c.send(Message{Type: MsgUnsubscribe, ClientID: c.clientID})
}

// Send submits a navigation command.
func (c *Client) Send(input InputPayload) error {
	if err := input.Validate(); err != nil {
		return err
	}
	return c.send(Message{Type: MsgInput, ClientID: c.clientID, Payload: input})
}

// Ping checks the console is alive.
func (c *Client) Ping() error {
	return c.send(Message{Type: MsgPing, ClientID: c.clientID})
}

// Next blocks for the next message and decodes state and error payloads.
// A MsgError arrives as an error wrapping ErrRemote.
func (c *Client) Next(timeout time.Duration) (*Message, *StatePayload, error) {
	if timeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(timeout))
		defer c.conn.SetReadDeadline(time.Time{})
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, net.ErrClosed
	}

	var msg Message
	if err := json.Unmarshal(c.scanner.Bytes(), &msg); err != nil {
		return nil, nil, err
	}
	switch msg.Type {
	case MsgState:
		var state StatePayload
		if err := decodePayload(msg.Payload, &state); err != nil {
			return &msg, nil, err
		}
		return &msg, &state, nil
	case MsgError:
		var e ErrorPayload
		decodePayload(msg.Payload, &e)
		return &msg, nil, fmt.Errorf("%w: %s", ErrRemote, e.Message)
	}
	return &msg, nil, nil
}

// NextState skips messages until a state arrives.
func (c *Client) NextState(timeout time.Duration) (*StatePayload, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if timeout > 0 && remaining <= 0 {
			return nil, fmt.Errorf("no state within %v", timeout)
		}
		_, state, err := c.Next(remaining)
		if err != nil {
			return nil, err
		}
		if state != nil {
			return state, nil
		}
	}
}

func (c *Client) send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = c.conn.Write(append(data, '\n'))
	return err
}
