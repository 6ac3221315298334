// Package server provides the daemon commands shared by every application
// build: genesis initialization, the ABCI server, genesis validation and
// block inspection.
package server
