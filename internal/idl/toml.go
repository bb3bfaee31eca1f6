package idl

import (
	"sort"

	toml "github.com/pelletier/go-toml"
)

func readTOML(data []byte) (*rawDocument, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errorf("parse TOML: %v", err)
	}

	doc := &rawDocument{Sections: make(map[string]bool)}
	for _, k := range []string{"model", "table", "message"} {
		doc.Sections[k] = tree.Has(k)
	}
	if mt, ok := tree.Get("model").(*toml.Tree); ok {
		doc.ModelName = mt.Get("name")
	}

	types, ok := tree.Get("types").(*toml.Tree)
	if !ok {
		return doc, nil
	}
	doc.HasTypes = true

	// Tree keys come from a map; recover document order from positions.
	keys := types.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		pi := types.GetPositionPath([]string{keys[i]})
		pj := types.GetPositionPath([]string{keys[j]})
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})

	for _, k := range keys {
		rt := rawType{Name: k}
		if sub, ok := types.GetPath([]string{k}).(*toml.Tree); ok {
			rt.Table = sub.ToMap()
		}
		doc.Types = append(doc.Types, rt)
	}
	return doc, nil
}
