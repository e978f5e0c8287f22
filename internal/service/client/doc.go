// Package client talks to a remote desk layout server over gRPC.
package client
