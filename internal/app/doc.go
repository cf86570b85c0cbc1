// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the check pipeline (load manifests,
// evaluate declarations, write the report), decoupled from the CLI entrypoint.
package app
