package idl

import (
	yaml "gopkg.in/yaml.v3"
)

func readYAML(data []byte) (*rawDocument, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errorf("parse YAML: %v", err)
	}

	doc := &rawDocument{Sections: make(map[string]bool)}
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, errorf("top level of a YAML interface must be a mapping")
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		switch key {
		case "model":
			doc.Sections[key] = true
			var m map[string]any
			if err := val.Decode(&m); err == nil {
				doc.ModelName = m["name"]
			}
		case "table", "message":
			doc.Sections[key] = true
		case "types":
			if val.Kind != yaml.MappingNode {
				continue
			}
			doc.HasTypes = true
			// Mapping nodes keep document order, unlike a decoded map.
			for j := 0; j+1 < len(val.Content); j += 2 {
				rt := rawType{Name: val.Content[j].Value}
				var tbl map[string]any
				if err := val.Content[j+1].Decode(&tbl); err == nil {
					rt.Table = tbl
				}
				doc.Types = append(doc.Types, rt)
			}
		}
	}
	return doc, nil
}
