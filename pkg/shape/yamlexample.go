package shape

import (
	"fmt"
	"sort"

	"sigs.k8s.io/yaml"
)

// FromYAMLExample infers a shape descriptor from an example YAML (or JSON)
// instance document. Mappings become anonymous records whose fields follow
// sorted key order, sequences become lists typed by their first element, and
// scalars become the matching primitive. Integral numbers infer int, others
// float. Empty sequences infer list of arbitrary JSON.
//
// Parameters:
//
//	yamlData []byte: The example document to infer from.
//
// Returns:
//
//	*Shape: The inferred shape descriptor.
//	error: An error if the document cannot be unmarshaled, otherwise nil.
func FromYAMLExample(yamlData []byte) (*Shape, error) {
	var data interface{}
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, fmt.Errorf("shape: unmarshal example: %w", err)
	}
	return inferNode(data), nil
}

// inferNode recursively infers the shape of one node in the example
// structure.
func inferNode(node interface{}) *Shape {
	switch nodeValue := node.(type) {
	case map[string]interface{}:
		names := make([]string, 0, len(nodeValue))
		for k := range nodeValue {
			names = append(names, k)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(names))
		for _, k := range names {
			fields = append(fields, F(k, inferNode(nodeValue[k])))
		}
		return NewRecord("", fields...)
	case []interface{}:
		if len(nodeValue) > 0 {
			return NewList(inferNode(nodeValue[0]))
		}
		return NewList(JSON())
	case string:
		return NewString()
	case float64:
		if nodeValue == float64(int64(nodeValue)) {
			return NewInt()
		}
		return NewFloat()
	case int:
		return NewInt()
	case bool:
		return NewBool()
	case nil:
		return NewNull()
	default:
		return JSON()
	}
}
