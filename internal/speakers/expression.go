package speakers

import (
	"strings"
)

// Node is one speaker group and the characters it addresses.
type Node struct {
	Speakers  []string
	Listeners []string
}

// ParseNode reads the leading node of a speaker expression such as
// "ANNA, BEN to CARL, DANA to EVE". It returns the node and the text that
// starts the next node, which is empty when the expression is exhausted.
//
// A listener clause with several names hands its last name to the next node
// as a speaker. A single listener both closes this node and opens the next,
// so "A to B to C" chains A→B and B→C.
func ParseNode(expr string) (Node, string) {
	head, tail, addressed := cutListener(expr)
	node := Node{Speakers: splitNames(head), Listeners: []string{}}
	if !addressed {
		return node, ""
	}

	clause, after, more := cutListener(tail)
	listeners := splitNames(clause)
	if !more || len(listeners) == 0 {
		node.Listeners = listeners
		return node, ""
	}
	if len(listeners) == 1 {
		node.Listeners = listeners
		return node, listeners[0] + " to " + after
	}
	last := listeners[len(listeners)-1]
	node.Listeners = listeners[:len(listeners)-1]
	return node, last + " to " + after
}

// ParseExpression splits a full expression into ordered nodes.
func ParseExpression(expr string) []Node {
	var nodes []Node
	rest := strings.TrimSpace(expr)
	for rest != "" {
		node, next := ParseNode(rest)
		if len(node.Speakers) == 0 && len(node.Listeners) == 0 {
			break
		}
		nodes = append(nodes, node)
		if next == rest {
			break
		}
		rest = next
	}
	return nodes
}

// Names flattens nodes into de-duplicated speaker and listener names in
// first-seen order.
func Names(nodes []Node) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	for _, n := range nodes {
		for _, s := range n.Speakers {
			add(s)
		}
		for _, l := range n.Listeners {
			add(l)
		}
	}
	return out
}

func cutListener(text string) (string, string, bool) {
	loc := listenerDelimiter.FindStringIndex(text)
	if loc == nil {
		return strings.TrimSpace(text), "", false
	}
	return strings.TrimSpace(text[:loc[0]]), strings.TrimSpace(text[loc[1]:]), true
}

func splitNames(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
