// Package logger wraps zap with the helpers the desk planner uses everywhere:
// a global sugared logger with a console encoder, an atomic level that the
// CLIs set from flags or settings, and context helpers so every layer logs
// through the logger stored in its context.
package logger
