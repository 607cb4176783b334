package manifest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxDepth bounds the walk so that alias cycles terminate.
const maxDepth = 100

// skipKeys are never descended into.
var skipKeys = map[string]bool{
	"image":       true,
	"build":       true,
	"networks":    true,
	"volumes":     true,
	"ports":       true,
	"environment": true,
}

// nameKeys name a service found at the document root, in priority order.
var nameKeys = []string{"name", "container_name", "service"}

// ExtractServices returns the raw (unnormalized) service names and image
// tags found in content. It never fails: malformed YAML goes through the
// regex fallback and any other failure yields an empty map.
func ExtractServices(content string) Services {
	s, _ := Extract(content)
	return s
}

// Extract is ExtractServices that also reports which strategy produced the
// result.
func Extract(content string) (s Services, mode Mode) {
	defer func() {
		if r := recover(); r != nil {
			s, mode = Services{}, ModeFailed
		}
	}()

	docs, err := parseDocuments(content)
	if err != nil {
		return extractWithRegex(content), ModeRegex
	}
	switch len(docs) {
	case 0:
		return Services{}, ModeEmpty
	case 1:
	default:
		// Documents of the same shape share walk paths, so a stream goes
		// through the line-based fallback, which keeps one entry per image.
		return extractWithRegex(content), ModeRegex
	}

	w := &walker{services: Services{}}
	w.walk(docs[0], "", 0)
	return w.services, ModeYAML
}

// parseDocuments decodes every document in content. Documents that are
// empty or null are dropped.
func parseDocuments(content string) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))

	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if root := resolve(&doc); root != nil && !isNull(root) {
			docs = append(docs, root)
		}
	}
}

type walker struct {
	services Services
}

func (w *walker) walk(n *yaml.Node, path string, depth int) {
	n = resolve(n)
	if n == nil || depth > maxDepth {
		return
	}

	switch n.Kind {
	case yaml.MappingNode:
		w.walkMapping(n, path, depth)
	case yaml.SequenceNode:
		for i, item := range n.Content {
			w.walk(item, fmt.Sprintf("%s[%d]", path, i), depth+1)
		}
	}
}

func (w *walker) walkMapping(n *yaml.Node, path string, depth int) {
	pairs := mappingPairs(n, depth)

	if img, ok := lookup(pairs, "image"); ok && isString(img) {
		name := path
		if name == "" {
			name = rootName(pairs)
		}
		w.services[name] = ExtractImageTag(img.Value)
	}

	for _, p := range pairs {
		if skipKeys[p.key] {
			continue
		}
		child := p.key
		if path != "" {
			child = path + "." + p.key
		}
		w.walk(p.value, child, depth+1)
	}
}

func rootName(pairs []pair) string {
	for _, k := range nameKeys {
		if v, ok := lookup(pairs, k); ok && v.Kind == yaml.ScalarNode && !isNull(v) {
			return v.Value
		}
	}
	return "unnamed"
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs flattens a mapping node into key/value pairs, expanding
// merge keys ("<<: *base"). Merged keys come first and explicit keys
// override them, keeping the position of the first occurrence.
func mappingPairs(n *yaml.Node, depth int) []pair {
	var merged, explicit []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			merged = append(merged, mergeSources(v, depth)...)
			continue
		}
		explicit = append(explicit, pair{key: resolve(k).Value, value: v})
	}

	var out []pair
	index := make(map[string]int)
	for _, p := range append(merged, explicit...) {
		if i, ok := index[p.key]; ok {
			out[i].value = p.value
			continue
		}
		index[p.key] = len(out)
		out = append(out, p)
	}
	return out
}

func mergeSources(v *yaml.Node, depth int) []pair {
	if depth > maxDepth {
		return nil
	}
	v = resolve(v)
	if v == nil {
		return nil
	}

	switch v.Kind {
	case yaml.MappingNode:
		return mappingPairs(v, depth+1)
	case yaml.SequenceNode:
		// Earlier sources take precedence over later ones.
		var out []pair
		seen := make(map[string]bool)
		for _, item := range v.Content {
			for _, p := range mergeSources(item, depth+1) {
				if !seen[p.key] {
					seen[p.key] = true
					out = append(out, p)
				}
			}
		}
		return out
	}
	return nil
}

func lookup(pairs []pair, key string) (*yaml.Node, bool) {
	for _, p := range pairs {
		if p.key == key {
			return resolve(p.value), true
		}
	}
	return nil, false
}

// resolve unwraps document and alias nodes.
func resolve(n *yaml.Node) *yaml.Node {
	for i := 0; n != nil && i < maxDepth; i++ {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
