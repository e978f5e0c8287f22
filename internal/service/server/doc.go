// Package server runs the desk layout gRPC server process.
package server
