package mapping

import "fmt"

// FieldMapping describes how one source path maps to one target path.
type FieldMapping struct {
	// Source is the dot-path read from the source record
	Source string `json:"source"`
	// Target is the dot-path written on the target record
	Target string `json:"target"`
	// TransformName references a transform in the TransformRegistry (optional).
	// It is resolved into Transform at rule registration time.
	TransformName string `json:"transform,omitempty"`
	// Transform converts the source value before it is written (optional).
	// Not serialized; populated from TransformName or set directly in code.
	Transform TransformFunc `json:"-"`
	// Required marks the source field as mandatory. When the source value is
	// absent the rule fails with a field-level error; Default is ignored.
	Required bool `json:"required,omitempty"`
	// Default is written to the target when the source value is absent and the
	// mapping is not required (optional)
	Default any `json:"default,omitempty"`
}

// Validate validates the field mapping
func (m FieldMapping) Validate() error {
	if m.Source == "" {
		return ErrFieldMappingNoSource
	}
	if m.Target == "" {
		return ErrFieldMappingNoTarget
	}
	return nil
}

// ResolveTransform populates Transform from TransformName using the given
// registry. A mapping without a transform name resolves to a nil Transform.
// An already resolved function is left untouched.
func (m *FieldMapping) ResolveTransform(transforms *TransformRegistry) error {
	if m.Transform != nil || m.TransformName == "" {
		return nil
	}
	fn, ok := transforms.Lookup(m.TransformName)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTransform, m.TransformName)
	}
	m.Transform = fn
	return nil
}
