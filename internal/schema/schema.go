// Package schema holds the device model documentation is generated from and
// the loaders that build it from YAML, JSON or TOML declarations.
//
// A Device and everything it owns is read-only once loaded. Generators derive
// text from it and never write back.
package schema

import (
	"strings"

	"github.com/Alia5/bindoc/internal/i18n"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// ErrSchema marks every error caused by a malformed device declaration.
var ErrSchema = errors.New("schema error")

// DefaultFirmwareBaseline is the firmware version every device is assumed to
// ship with. Packets introduced later get a versionadded note.
var DefaultFirmwareBaseline = semver.MustParse("2.0.0")

// Kind distinguishes callable functions from callbacks.
type Kind int

const (
	KindFunction Kind = iota
	KindCallback
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindCallback:
		return "callback"
	default:
		return "unknown"
	}
}

// ParseKind parses a packet type as written in a schema file.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function":
		return KindFunction, nil
	case "callback":
		return KindCallback, nil
	default:
		return 0, schemaError(
			errors.Newf("unknown packet type %q", s),
			"packet type must be 'function' or 'callback'")
	}
}

// Direction is the data flow of an element relative to the device.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// ParseDirection accepts "in" or "out" in any case.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case In:
		return In, nil
	case Out:
		return Out, nil
	default:
		return "", schemaError(
			errors.Newf("invalid element direction %q", s),
			"element direction must be 'in' or 'out'")
	}
}

// Classification selects the document section a function is listed in.
// Callbacks always carry ClassNone.
type Classification int

const (
	ClassNone Classification = iota
	ClassBasic
	ClassAdvanced
	ClassCallbackConfig
)

func (c Classification) String() string {
	switch c {
	case ClassBasic:
		return "bf"
	case ClassAdvanced:
		return "af"
	case ClassCallbackConfig:
		return "ccf"
	default:
		return "c"
	}
}

// ParseClassification maps the short and long classification tags.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bf", "basic":
		return ClassBasic, nil
	case "af", "advanced":
		return ClassAdvanced, nil
	case "ccf", "callback_config", "callback-config":
		return ClassCallbackConfig, nil
	case "c", "":
		return ClassNone, nil
	default:
		return ClassNone, schemaError(
			errors.Newf("unknown doc classification %q", s),
			"use one of bf, af, ccf for functions and c (or nothing) for callbacks")
	}
}

// Element is one parameter or return value.
type Element struct {
	Name      string
	Type      string
	Length    int
	Direction Direction
}

// IsArray reports whether the element carries more than one value.
func (e Element) IsArray() bool {
	return e.Length > 1
}

// Doc is the prose attached to a packet.
type Doc struct {
	Class Classification
	Text  i18n.Text
}

// Packet is one function or callback of a device.
type Packet struct {
	Kind           Kind
	Name           string // CamelCase, e.g. GetTemperature
	UnderscoreName string // e.g. get_temperature
	Elements       []Element
	Doc            Doc
	SinceFirmware  *semver.Version
}

// In returns the input elements in declaration order.
func (p *Packet) In() []Element {
	return p.elements(In)
}

// Out returns the output elements in declaration order.
func (p *Packet) Out() []Element {
	return p.elements(Out)
}

func (p *Packet) elements(dir Direction) []Element {
	var out []Element
	for _, e := range p.Elements {
		if e.Direction == dir {
			out = append(out, e)
		}
	}
	return out
}

// UpperCaseName is the underscore name in upper case, e.g. GET_TEMPERATURE.
func (p *Packet) UpperCaseName() string {
	return strings.ToUpper(p.UnderscoreName)
}

// Device is one documented hardware interface.
type Device struct {
	Category         string // e.g. Bricklet
	Name             string // CamelCase base name, e.g. AmbientLight
	UnderscoreName   string // e.g. ambient_light
	DisplayName      string // e.g. Ambient Light
	Features         []string
	FirmwareBaseline *semver.Version
	API              i18n.Text
	Packets          []*Packet

	// Source is the file the device was loaded from, if any.
	Source string
}

// Functions returns the function packets in declaration order.
func (d *Device) Functions() []*Packet {
	return d.packets(KindFunction)
}

// Callbacks returns the callback packets in declaration order.
func (d *Device) Callbacks() []*Packet {
	return d.packets(KindCallback)
}

func (d *Device) packets(kind Kind) []*Packet {
	var out []*Packet
	for _, p := range d.Packets {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}

// HasCallbacks reports whether the device declares at least one callback.
func (d *Device) HasCallbacks() bool {
	for _, p := range d.Packets {
		if p.Kind == KindCallback {
			return true
		}
	}
	return false
}

// CategoryLower is the category as used in anchors, e.g. bricklet.
func (d *Device) CategoryLower() string {
	return strings.ToLower(d.Category)
}

// Flags returns the names usable in conditional markup: every feature plus
// the lower-cased category.
func (d *Device) Flags() map[string]bool {
	flags := make(map[string]bool, len(d.Features)+1)
	for _, f := range d.Features {
		flags[strings.ToLower(f)] = true
	}
	flags[d.CategoryLower()] = true
	return flags
}

// Key identifies a device within a schema set.
func (d *Device) Key() string {
	return d.Category + "/" + d.Name
}

// Baseline returns the firmware baseline, falling back to the default.
func (d *Device) Baseline() *semver.Version {
	if d.FirmwareBaseline != nil {
		return d.FirmwareBaseline
	}
	return DefaultFirmwareBaseline
}

func schemaError(err error, hint string) error {
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return errors.Mark(err, ErrSchema)
}
