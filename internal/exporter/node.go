package exporter

import (
	"fmt"

	"github.com/Faultbox/landscape-exporter/pkg/geometry"
)

// Parameter names exposed by the exporter node.
const (
	ParmFile    = "file"
	ParmRemap   = "remap"
	ParmInRange = "inRange"
	ParmExport  = "export"
)

// ParmType is the widget type of a node parameter.
type ParmType int

// Parameter types.
const (
	ParmTypeFile ParmType = iota
	ParmTypeToggle
	ParmTypeFloat
	ParmTypeButton
)

// Parm describes one node parameter for the host UI.
type Parm struct {
	Name     string
	Label    string
	Type     ParmType
	Size     int       // component count
	Defaults []float64 // numeric defaults, one per component
}

// Parms is the node's parameter template list, in UI order.
var Parms = []Parm{
	{Name: ParmFile, Label: "File", Type: ParmTypeFile, Size: 1},
	{Name: ParmRemap, Label: "Remap", Type: ParmTypeToggle, Size: 1, Defaults: []float64{1}},
	{Name: ParmInRange, Label: "In Range", Type: ParmTypeFloat, Size: 2, Defaults: []float64{0, 200}},
	{Name: ParmExport, Label: "Export", Type: ParmTypeButton, Size: 1},
}

// CookFunc returns the node's cooked input geometry.
type CookFunc func() (geometry.Dataset, error)

// Node adapts Exporter to a host that exposes parameters and a button.
// Parameter values are read fresh on every export press.
type Node struct {
	cook     CookFunc
	exporter *Exporter

	file    string
	remap   bool
	inRange [2]float64
}

// NewNode returns a node with default parameter values.
func NewNode(cook CookFunc, opts ...Option) *Node {
	d := DefaultSettings()
	return &Node{
		cook:     cook,
		exporter: New(opts...),
		remap:    d.Remap,
		inRange:  [2]float64{d.InLow, d.InHigh},
	}
}

// SetString sets a string parameter.
func (n *Node) SetString(name, value string) error {
	if name != ParmFile {
		return fmt.Errorf("parameter %q is not a string", name)
	}
	n.file = value
	return nil
}

// SetBool sets a toggle parameter.
func (n *Node) SetBool(name string, value bool) error {
	if name != ParmRemap {
		return fmt.Errorf("parameter %q is not a toggle", name)
	}
	n.remap = value
	return nil
}

// SetFloat sets one component of a float parameter.
func (n *Node) SetFloat(name string, index int, value float64) error {
	if name != ParmInRange {
		return fmt.Errorf("parameter %q is not a float", name)
	}
	if index < 0 || index >= len(n.inRange) {
		return fmt.Errorf("parameter %q has no component %d", name, index)
	}
	n.inRange[index] = value
	return nil
}

// Settings returns the export settings for the current parameter values.
func (n *Node) Settings() Settings {
	return Settings{
		OutputPath: n.file,
		Remap:      n.remap,
		InLow:      n.inRange[0],
		InHigh:     n.inRange[1],
		Field:      DefaultField,
	}
}

// Press triggers a button parameter. Only "export" exists.
func (n *Node) Press(name string) (Result, error) {
	if name != ParmExport {
		return Result{}, fmt.Errorf("parameter %q is not a button", name)
	}

	s := n.Settings()
	if s.OutputPath == "" {
		// Don't cook for nothing.
		return n.exporter.Export(nil, s)
	}

	if n.cook == nil {
		return Result{}, fmt.Errorf("%w: no input geometry", ErrMissingHeightField)
	}
	ds, err := n.cook()
	if err != nil {
		return Result{}, fmt.Errorf("cooking input: %w", err)
	}
	return n.exporter.Export(ds, s)
}
