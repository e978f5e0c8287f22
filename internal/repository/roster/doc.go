// Package roster reads and writes lists of people as YAML files.
//
// JSON files are accepted as well since JSON is a subset of YAML. Entries are
// validated before they become domain people, and entries without an id get a
// generated one.
package roster
