package caps

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/displayctl/ddc-go/pkg/vcp"
	"github.com/displayctl/ddc-go/pkg/version"
)

// Feature is one advertised VCP feature.
type Feature struct {
	Code vcp.FeatureCode

	// Values lists the permitted discrete values, sorted and unique. Empty
	// means the feature is continuous or unconstrained.
	Values []byte
}

// Descriptor is the flat, queryable view of a capability string.
type Descriptor struct {
	Protocol    string
	Type        string
	Model       string
	Commands    []byte
	MCCSVersion version.Version
	Features    map[vcp.FeatureCode]Feature

	// Groups keeps groups that have no dedicated field, by name.
	Groups map[string]string

	// Raw is the capability string the descriptor was built from, if known.
	Raw string
}

// NewDescriptor reshapes a parsed tree. A malformed vcp or cmds list keeps
// its parsed prefix and the error wraps ErrPartial.
func NewDescriptor(tree *Tree) (*Descriptor, error) {
	d := &Descriptor{
		Features: make(map[vcp.FeatureCode]Feature),
		Groups:   make(map[string]string),
	}
	if tree == nil {
		return d, nil
	}

	var errs []error
	for _, g := range tree.Groups {
		switch g.Name {
		case "prot":
			d.Protocol = strings.TrimSpace(g.Value)
		case "type":
			d.Type = strings.TrimSpace(g.Value)
		case "model":
			d.Model = strings.TrimSpace(g.Value)
		case "mccs_ver":
			v, err := version.Parse(g.Value)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			d.MCCSVersion = v
		case "cmds":
			entries, err := ParseHexList(g.Value)
			for _, e := range entries {
				d.Commands = append(d.Commands, e.Code)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("cmds: %w", err))
			}
		case "vcp":
			entries, err := ParseHexList(g.Value)
			for _, e := range entries {
				d.addFeature(e)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("vcp: %w", err))
			}
		default:
			d.Groups[g.Name] = g.Value
		}
	}

	if len(errs) > 0 {
		return d, fmt.Errorf("%w: %w", ErrPartial, errors.Join(errs...))
	}
	return d, nil
}

func (d *Descriptor) addFeature(e HexEntry) {
	code := vcp.FeatureCode(e.Code)
	f := d.Features[code]
	f.Code = code
	f.Values = append(f.Values, e.Values...)
	slices.Sort(f.Values)
	f.Values = slices.Compact(f.Values)
	d.Features[code] = f
}

// ParseDescriptor parses a capability string into a descriptor. The
// descriptor is non-nil whenever any group could be read; errors wrap
// ErrPartial or ErrSyntax.
func ParseDescriptor(s string) (*Descriptor, error) {
	tree, treeErr := Parse(s)
	if tree == nil {
		return nil, treeErr
	}
	d, err := NewDescriptor(tree)
	d.Raw = s
	if treeErr != nil || err != nil {
		return d, errors.Join(treeErr, err)
	}
	return d, nil
}

// Supports reports whether the feature is advertised.
func (d *Descriptor) Supports(code vcp.FeatureCode) bool {
	_, ok := d.Features[code]
	return ok
}

// Values returns the advertised discrete values for a feature.
func (d *Descriptor) Values(code vcp.FeatureCode) []byte {
	return d.Features[code].Values
}

// Codes returns the advertised feature codes in ascending order.
func (d *Descriptor) Codes() []vcp.FeatureCode {
	return slices.Sorted(maps.Keys(d.Features))
}

// Kinds returns kind hints for a decoder: features with discrete value
// lists are non-continuous.
func (d *Descriptor) Kinds() map[vcp.FeatureCode]vcp.Kind {
	kinds := make(map[vcp.FeatureCode]vcp.Kind)
	for code, f := range d.Features {
		if len(f.Values) > 0 {
			kinds[code] = vcp.KindNonContinuous
		}
	}
	return kinds
}

// SupportsCommand reports whether a DDC/CI command opcode is advertised.
func (d *Descriptor) SupportsCommand(op byte) bool {
	return slices.Contains(d.Commands, op)
}
