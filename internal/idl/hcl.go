package idl

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type hclFile struct {
	Model    *hclModel   `hcl:"model,block"`
	Tables   []hclOpaque `hcl:"table,block"`
	Messages []hclOpaque `hcl:"message,block"`
	Types    []hclType   `hcl:"type,block"`
}

type hclOpaque struct {
	Remain hcl.Body `hcl:",remain"`
}

type hclModel struct {
	Name string `hcl:"name"`
}

type hclType struct {
	Name   string     `hcl:"name,label"`
	Desc   *string    `hcl:"desc,optional"`
	Fields []hclField `hcl:"field,block"`
}

type hclField struct {
	Name    string    `hcl:"name,label"`
	Type    string    `hcl:"type"`
	Dims    []int     `hcl:"dims,optional"`
	Desc    *string   `hcl:"desc,optional"`
	Default cty.Value `hcl:"default,optional"`
}

func readHCL(file string, data []byte) (*rawDocument, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(data, file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	doc := &rawDocument{
		Sections: map[string]bool{
			"model":   root.Model != nil,
			"table":   len(root.Tables) > 0,
			"message": len(root.Messages) > 0,
		},
		HasTypes: len(root.Types) > 0,
	}
	if root.Model != nil {
		doc.ModelName = root.Model.Name
	}

	for _, t := range root.Types {
		tbl := map[string]any{}
		if t.Desc != nil {
			tbl["desc"] = *t.Desc
		}
		fields := make([]any, 0, len(t.Fields))
		for _, fd := range t.Fields {
			raw, err := hclFieldTable(fd)
			if err != nil {
				return nil, err
			}
			fields = append(fields, raw)
		}
		tbl["fields"] = fields
		doc.Types = append(doc.Types, rawType{Name: t.Name, Table: tbl})
	}
	return doc, nil
}

func hclFieldTable(fd hclField) (map[string]any, error) {
	raw := map[string]any{"name": fd.Name, "type": fd.Type}
	if fd.Dims != nil {
		dims := make([]any, len(fd.Dims))
		for i, d := range fd.Dims {
			dims[i] = int64(d)
		}
		raw["dims"] = dims
	}
	if fd.Desc != nil {
		raw["desc"] = *fd.Desc
	}
	if !fd.Default.IsNull() {
		def, err := ctyToNative(fd.Default)
		if err != nil {
			return nil, errorf("field %s default: %v", fd.Name, err)
		}
		raw["default"] = def
	}
	return raw, nil
}

// ctyToNative converts a default literal to the Go values the other decoders
// produce. Whole numbers become int64 so integer fields accept them.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType():
		slice := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for it.Next() {
			_, el := it.Element()
			native, err := ctyToNative(el)
			if err != nil {
				return nil, err
			}
			slice = append(slice, native)
		}
		return slice, nil

	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
