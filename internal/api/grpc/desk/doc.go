// Package desk implements the gRPC transport for desk layouts.
//
// The desks.v1.DeskLayoutService carries google.protobuf.Struct payloads so
// no generated code is needed: codec.go maps people and constraint
// violations to and from Struct values, service.go holds the service
// descriptor and client stub, and server.go adapts a business service to it.
package desk
