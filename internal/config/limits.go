package config

import "time"

// WebSocket connection limits and constraints
const (
	// Connection limits (classroom scale)
	MaxTotalConnections = 64

	// Rate limiting; move events stream at the client animation rate,
	// so the ceiling is well above one message per frame at 30fps.
	MaxMessagesPerSecond = 60
	RateLimitWindow      = time.Second

	// Timeouts
	WriteTimeout = 10 * time.Second
	PingInterval = 30 * time.Second
	PongTimeout  = 90 * time.Second // 3x ping interval for network delay tolerance

	// Channel buffers
	ClientSendBufferSize = 256
	HubInboundBufferSize = 256
)
