// Package api defines the shared types of the crewcanvas engine: the node
// and edge model, the blueprint input contract, deployment state, the
// observer and clock interfaces, and the sentinel errors returned by graph
// and deployment operations.
//
// Most users should import the root crewcanvas package, which re-exports
// everything here.
package api
