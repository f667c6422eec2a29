package models

// GraphNode is a label-agnostic representation of a graph node, suitable for
// serializing raw Cypher results to JSON without mapping to a typed entity.
type GraphNode struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels"`
	Properties map[string]any `json:"properties"`
}

// GraphEdge is a label-agnostic representation of a relationship between two
// nodes, keyed by the element IDs of its endpoints.
type GraphEdge struct {
	ID         string         `json:"id"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// GraphResult holds the de-duplicated nodes and edges returned by a graph
// query.
type GraphResult struct {
	Nodes []*GraphNode `json:"nodes"`
	Edges []*GraphEdge `json:"edges"`
}
