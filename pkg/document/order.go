package document

import (
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// keyOrder records, for every decoded mapping, its keys in the order they
// appear in the source. Mappings are identified by their map header.
type keyOrder map[uintptr][]string

// KeyOrder returns the keys of m in document order. Keys the document does
// not account for (m was built elsewhere or modified) follow, sorted.
func (d *Document) KeyOrder(m map[string]interface{}) []string {
	var recorded []string
	if d != nil && d.order != nil && m != nil {
		recorded = d.order[reflect.ValueOf(m).Pointer()]
	}

	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range recorded {
		if _, ok := m[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

type pair struct {
	key   string
	value *yaml.Node
}

// record walks node alongside the value it decoded into
func (o keyOrder) record(node *yaml.Node, value interface{}) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			o.record(node.Content[0], value)
		}
	case yaml.AliasNode:
		if node.Alias != nil {
			o.record(node.Alias, value)
		}
	case yaml.SequenceNode:
		items, ok := value.([]interface{})
		if !ok || len(items) != len(node.Content) {
			return
		}
		for i, item := range node.Content {
			o.record(item, items[i])
		}
	case yaml.MappingNode:
		m, ok := value.(map[string]interface{})
		if !ok || len(m) == 0 {
			return
		}
		pairs := mappingPairs(node)
		keys := make([]string, 0, len(pairs))
		for _, p := range pairs {
			keys = append(keys, p.key)
			if v, ok := m[p.key]; ok {
				o.record(p.value, v)
			}
		}
		o[reflect.ValueOf(m).Pointer()] = keys
	}
}

// mappingPairs lists the entries of a mapping in source order. Keys pulled in
// through a merge key take the merge key's place; explicit keys win.
func mappingPairs(node *yaml.Node) []pair {
	explicit := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isMerge(node.Content[i]) {
			explicit[node.Content[i].Value] = true
		}
	}

	var pairs []pair
	seen := make(map[string]bool)
	add := func(p pair) {
		if !seen[p.key] {
			seen[p.key] = true
			pairs = append(pairs, p)
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if !isMerge(k) {
			add(pair{key: k.Value, value: v})
			continue
		}
		for _, src := range mergeSources(v) {
			for _, p := range mappingPairs(src) {
				if !explicit[p.key] {
					add(p)
				}
			}
		}
	}
	return pairs
}

func isMerge(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == mergeTag
}

func mergeSources(n *yaml.Node) []*yaml.Node {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{n}
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, item := range n.Content {
			if item = resolveAlias(item); item.Kind == yaml.MappingNode {
				out = append(out, item)
			}
		}
		return out
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
