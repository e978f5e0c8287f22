// Package local runs desk layouts in process.
//
// Service wraps the arranger and the evaluator with logging. It backs the gRPC
// server and the planner CLI when no server is configured.
package local
