// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the game server.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single game API call from the CLI or MCP tools.
const GRPCRequest = 5 * time.Second

// ScenarioStep caps one Lua scenario step.
const ScenarioStep = 10 * time.Second

// Shutdown limits how long the game server waits for in-flight calls.
const Shutdown = 5 * time.Second
