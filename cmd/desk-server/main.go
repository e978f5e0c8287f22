// Command desk-server serves desk layouts over gRPC.
package main

import "github.com/oshokin/desk-planner/cmd/desk-server/cmd"

func main() {
	cmd.Execute()
}
