package graph

// Edge is a directed connection between two nodes. Precedence breaks ties
// between otherwise-equivalent edges out of the same node during shadowing
// (lower precedence wins); it has no effect on reachability.
type Edge struct {
	Source     NodeHandle
	Sink       NodeHandle
	Precedence int32
}
