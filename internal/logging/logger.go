// Package logging is the structured logger shared by the SkillShare server
// and CLI. SlogLogger is the only implementation: JSON to stdout for the
// server, a rotated file for the CLI, and a no-op one for tests.
package logging

import "context"

// Logger takes alternating key/value pairs after the message:
//
//	logger.Warn(ctx, "comments of deleted post kept", "post_id", id, "error", err)
//
// The server scopes its logger per module and the API client per request
// with With.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
