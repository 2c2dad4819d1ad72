package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Kind determines which input a property is edited with and, for select and
// object, which extra fields the descriptor carries.
type Kind string

// Property kinds.
const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindImage    Kind = "image"
	KindNumber   Kind = "number"
	KindURL      Kind = "url"
	KindDate     Kind = "date"
	KindSelect   Kind = "select"
	KindObject   Kind = "object"
)

// validKinds is the set of recognized property kinds.
var validKinds = map[Kind]bool{
	KindText:     true,
	KindTextarea: true,
	KindImage:    true,
	KindNumber:   true,
	KindURL:      true,
	KindDate:     true,
	KindSelect:   true,
	KindObject:   true,
}

// IsValidKind reports whether k is a recognized property kind.
func IsValidKind(k Kind) bool {
	return validKinds[k]
}

// ErrInvalidProperty is returned by Properties.Check for a malformed descriptor.
var ErrInvalidProperty = errors.New("invalid property descriptor")

// Option is one choice of a select property.
type Option struct {
	Code  string
	Label string
}

// Options is an ordered code -> label list. It encodes as a JSON object whose
// keys keep the declared order.
type Options []Option

// MarshalJSON encodes the options as an ordered {code: label} object.
func (o Options) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, opt := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, opt.Code, opt.Label); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Codes returns the option codes in declared order.
func (o Options) Codes() []string {
	codes := make([]string, len(o))
	for i, opt := range o {
		codes[i] = opt.Code
	}
	return codes
}

// Property describes one field of a schema type: how it is labelled and
// edited, whether a document must carry it, and for object properties the
// nested property set.
type Property struct {
	Name        string
	Label       string
	Description string
	Kind        Kind
	Required    bool
	Options     Options    // kind select only
	Properties  Properties // kind object only
}

// propertyJSON is the wire form of a Property. The name is the key of the
// enclosing object, so it is not repeated here.
type propertyJSON struct {
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Kind        Kind       `json:"type"`
	Required    bool       `json:"required"`
	Options     Options    `json:"options,omitempty"`
	Properties  Properties `json:"properties,omitempty"`
}

// Properties is an ordered name -> Property mapping.
type Properties []Property

// Get returns the property with the given name.
func (ps Properties) Get(name string) (Property, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Names returns the property names in declared order.
func (ps Properties) Names() []string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
	}
	return names
}

// Required returns the required properties in declared order.
func (ps Properties) Required() Properties {
	var out Properties
	for _, p := range ps {
		if p.Required {
			out = append(out, p)
		}
	}
	return out
}

// Check verifies the descriptor invariants recursively: names are non-empty
// and unique, kinds are known, options are present exactly for select
// properties and nested properties exactly for object properties.
func (ps Properties) Check() error {
	seen := make(map[string]bool, len(ps))
	for _, p := range ps {
		if p.Name == "" {
			return fmt.Errorf("%w: empty name", ErrInvalidProperty)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidProperty, p.Name)
		}
		seen[p.Name] = true

		if !IsValidKind(p.Kind) {
			return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidProperty, p.Name, p.Kind)
		}
		if (p.Kind == KindSelect) != (len(p.Options) > 0) {
			return fmt.Errorf("%w: %s options must be set only for select", ErrInvalidProperty, p.Name)
		}
		if (p.Kind == KindObject) != (len(p.Properties) > 0) {
			return fmt.Errorf("%w: %s properties must be set only for object", ErrInvalidProperty, p.Name)
		}
		if err := p.Properties.Check(); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	return nil
}

// MarshalJSON encodes the set as an ordered {name: descriptor} object.
func (ps Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range ps {
		if i > 0 {
			buf.WriteByte(',')
		}
		desc := propertyJSON{
			Label:       p.Label,
			Description: p.Description,
			Kind:        p.Kind,
			Required:    p.Required,
			Options:     p.Options,
			Properties:  p.Properties,
		}
		if err := writeMember(&buf, p.Name, desc); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeMember appends "key":value to buf.
func writeMember(buf *bytes.Buffer, key string, value any) error {
	kb, err := json.Marshal(key)
	if err != nil {
		return err
	}
	vb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	buf.Write(kb)
	buf.WriteByte(':')
	buf.Write(vb)
	return nil
}
