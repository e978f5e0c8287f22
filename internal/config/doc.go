// Package config defines the settings shared by the desk planner binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Settings hold the gRPC server address, the call timeout, the log level and
// the arranger options.
package config
