// Package planner implements the desk-planner CLI use cases: arranging a
// roster and checking a roster's order, either in process or through a desk
// server, and rendering the resulting row for the terminal.
package planner
