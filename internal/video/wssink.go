// SPDX-License-Identifier: MIT
package video

import (
	"showcqt/internal/transport"
)

// wireFrame is the JSON representation of a Frame sent to WebSocket
// clients. Pix marshals to a base64 string, since encoding/json treats
// []byte specially.
type wireFrame struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Stride int    `json:"stride"`
	PTS    int64  `json:"pts"`
	Pix    []byte `json:"pix"`
}

// WebSocketSink broadcasts frames to every client connected to a
// transport.WebSocketTransport, dropping frames when the transport's
// broadcast queue is full rather than blocking the render loop.
type WebSocketSink struct {
	t *transport.WebSocketTransport
}

// NewWebSocketSink starts a WebSocket server on addr and returns a sink
// that broadcasts every Emit'd frame to its connected clients.
func NewWebSocketSink(addr string) *WebSocketSink {
	return &WebSocketSink{t: transport.NewWebSocketTransport(addr)}
}

// Emit queues frame for broadcast to all connected clients. It never
// blocks: when the broadcast queue is full the frame is dropped for every
// client.
func (s *WebSocketSink) Emit(frame *Frame) error {
	return s.t.Send(wireFrame{
		Width:  frame.Width,
		Height: frame.Height,
		Stride: frame.Stride(),
		PTS:    frame.PTS,
		Pix:    frame.Pix,
	})
}

// Close shuts down the underlying WebSocket server.
func (s *WebSocketSink) Close() error {
	return s.t.Close()
}

var _ Sink = (*WebSocketSink)(nil)
