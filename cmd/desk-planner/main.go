// Command desk-planner arranges a roster of people along a row of desks.
package main

import "github.com/oshokin/desk-planner/cmd/desk-planner/cmd"

func main() {
	cmd.Execute()
}
