// Package flow defines the bucket, flow and processor graph rendered by flowdoc.
package flow

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unknown is rendered in place of any absent optional display field.
const Unknown = "(unknown)"

// Bucket is a named grouping of flows.
type Bucket struct {
	BucketID string `yaml:"bucketId" json:"bucketId"`
	Name     string `yaml:"name"     json:"name"`
}

// Flow is a named, versioned pipeline definition.
// Optional fields are nil when absent so that a present zero value such as
// version "0" is never confused with a missing one.
type Flow struct {
	ID          *string   `yaml:"id"          json:"id"`
	Name        *string   `yaml:"name"        json:"name"`
	Description *string   `yaml:"description" json:"description"`
	Version     *string   `yaml:"version"     json:"version"`
	Comments    *string   `yaml:"comments"    json:"comments"`
	Contents    *Contents `yaml:"contents"    json:"contents"`
}

// Contents holds the processors of a flow. A nil Processors slice means the
// flow has no processor section at all.
type Contents struct {
	Processors []Processor `yaml:"processors" json:"processors"`
}

// Processor is a configured unit of work within a flow. Comments is nil when
// absent; Properties is nil when the processor has no properties mapping.
type Processor struct {
	Name       string     `yaml:"name"       json:"name"`
	Comments   *string    `yaml:"comments"   json:"comments"`
	Bundle     Bundle     `yaml:"bundle"     json:"bundle"`
	Type       string     `yaml:"type"       json:"type"`
	Properties Properties `yaml:"properties" json:"properties"`
}

// String returns a pointer to s, for building optional fields.
func String(s string) *string {
	return &s
}

// OrUnknown dereferences an optional field, substituting Unknown when absent.
func OrUnknown(value *string) string {
	if value == nil {
		return Unknown
	}
	return *value
}

// DisplayName returns the flow name or Unknown.
func (f *Flow) DisplayName() string {
	return OrUnknown(f.Name)
}

// HasID reports whether the flow carries a usable identifier.
func (f *Flow) HasID() bool {
	return f.ID != nil && strings.TrimSpace(*f.ID) != ""
}

// UnmarshalYAML accepts "flowContents" as an alias of "contents", the key
// used by registry snapshots.
func (f *Flow) UnmarshalYAML(node *yaml.Node) error {
	type plain Flow
	var decoded plain
	if err := node.Decode(&decoded); err != nil {
		return err
	}
	*f = Flow(decoded)

	if f.Contents == nil {
		var alias struct {
			FlowContents *Contents `yaml:"flowContents"`
		}
		if err := node.Decode(&alias); err != nil {
			return err
		}
		f.Contents = alias.FlowContents
	}
	return nil
}

// Bundle identifies the plugin or module a processor type comes from.
type Bundle string

// UnmarshalYAML accepts either a scalar or a {group, artifact, version}
// mapping, which is flattened to "group:artifact:version".
func (b *Bundle) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*b = ""
			return nil
		}
		*b = Bundle(node.Value)
		return nil
	case yaml.MappingNode:
		var coords struct {
			Group    string `yaml:"group"`
			Artifact string `yaml:"artifact"`
			Version  string `yaml:"version"`
		}
		if err := node.Decode(&coords); err != nil {
			return err
		}
		parts := make([]string, 0, 3)
		for _, part := range []string{coords.Group, coords.Artifact, coords.Version} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		*b = Bundle(strings.Join(parts, ":"))
		return nil
	default:
		return fmt.Errorf("line %d: bundle must be a string or a mapping", node.Line)
	}
}

// Property is a single processor property.
type Property struct {
	Name  string
	Value any
}

// Properties is an ordered property mapping. Iteration order is the order in
// which properties appeared in the source document.
type Properties []Property

// UnmarshalYAML decodes a mapping while keeping its key order.
func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*p = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}

	props := make(Properties, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("property %q: %w", node.Content[i].Value, err)
		}
		props = append(props, Property{Name: node.Content[i].Value, Value: value})
	}
	*p = props
	return nil
}

// Get returns the value of the named property.
func (p Properties) Get(name string) (any, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return nil, false
}

// FieldErrors maps a field name to its ordered error messages.
type FieldErrors map[string][]string

// Add appends a message to the named field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Fields returns the field names in sorted order.
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ErrorSet is the collected errors of one entity.
type ErrorSet struct {
	// Type is a free-form entity label such as "Flow" or "Bucket".
	Type string `json:"type"`
	// ID is empty when the entity has no identifier.
	ID     string      `json:"id,omitempty"`
	Fields FieldErrors `json:"fields"`
}
