package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/bindoc/internal/i18n"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is a schema file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// report false.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

type rawDevice struct {
	Category         string      `yaml:"category" json:"category"`
	Name             string      `yaml:"name" json:"name"`
	UnderscoreName   string      `yaml:"underscore_name" json:"underscore_name"`
	DisplayName      string      `yaml:"display_name" json:"display_name"`
	Features         []string    `yaml:"features" json:"features"`
	FirmwareBaseline string      `yaml:"firmware_baseline" json:"firmware_baseline"`
	API              i18n.Text   `yaml:"api" json:"api"`
	Packets          []rawPacket `yaml:"packets" json:"packets"`
}

type rawPacket struct {
	Type          string       `yaml:"type" json:"type"`
	Name          string       `yaml:"name" json:"name"`
	SinceFirmware string       `yaml:"since_firmware" json:"since_firmware"`
	Elements      []rawElement `yaml:"elements" json:"elements"`
	Doc           rawDoc       `yaml:"doc" json:"doc"`
}

type rawDoc struct {
	Class string    `yaml:"class" json:"class"`
	Text  i18n.Text `yaml:"text" json:"text"`
}

// Parse decodes and validates one device declaration.
func Parse(data []byte, format Format) (*Device, error) {
	var raw rawDevice
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatTOML:
		err = decodeTOML(data, &raw)
	default:
		return nil, errors.Newf("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, schemaError(errors.Wrapf(err, "decode %s", format), "")
	}
	return raw.build()
}

// decodeTOML routes a TOML document through the JSON decoder so both formats
// share one set of struct tags and element notations.
func decodeTOML(data []byte, raw *rawDevice) error {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(tree.ToMap())
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, raw)
}

// LoadFile reads one schema file.
func LoadFile(path string) (*Device, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, errors.WithHint(
			errors.Newf("%s: unsupported schema file extension", path),
			"schema files end in .yaml, .yml, .json or .toml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read schema %s", path)
	}
	dev, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	dev.Source = path
	return dev, nil
}

// LoadDir loads every schema file directly inside dir, in file name order.
// Two files declaring the same device is an error.
func LoadDir(dir string) ([]*Device, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "read schema directory"),
			"point --schemas at the directory holding the device declarations")
	}

	var devices []*Device
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		dev, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[dev.Key()]; dup {
			return nil, schemaError(
				errors.Newf("device %s declared in both %s and %s", dev.Key(), prev, path),
				"every device must be declared exactly once")
		}
		seen[dev.Key()] = path
		devices = append(devices, dev)
	}
	return devices, nil
}

// Select keeps the devices whose name or underscore name matches one of
// names, case-insensitively. An empty names list keeps everything. A name that
// matches nothing is an error.
func Select(devices []*Device, names []string) ([]*Device, error) {
	if len(names) == 0 {
		return devices, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[strings.ToLower(strings.TrimSpace(n))] = true
	}

	var out []*Device
	matched := make(map[string]bool, len(names))
	for _, d := range devices {
		for _, n := range []string{strings.ToLower(d.Name), d.UnderscoreName} {
			if want[n] {
				matched[n] = true
				out = append(out, d)
				break
			}
		}
	}
	for n := range want {
		if !matched[n] {
			return nil, errors.WithHint(
				errors.Newf("no device named %q", n),
				"run 'bindoc list' to see the available devices")
		}
	}
	return out, nil
}

func (r *rawDevice) build() (*Device, error) {
	if strings.TrimSpace(r.Category) == "" {
		return nil, schemaError(errors.New("device without a category"), "set 'category', e.g. Brick or Bricklet")
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, schemaError(errors.New("device without a name"), "set 'name' to the CamelCase device name")
	}

	dev := &Device{
		Category:       strings.TrimSpace(r.Category),
		Name:           ToPascalCase(strings.TrimSpace(r.Name)),
		UnderscoreName: r.UnderscoreName,
		DisplayName:    r.DisplayName,
		Features:       r.Features,
	}
	if dev.UnderscoreName == "" {
		dev.UnderscoreName = ToSnakeCase(dev.Name)
	}
	if dev.DisplayName == "" {
		dev.DisplayName = ToDisplayName(dev.Name)
	}

	var err error
	if r.FirmwareBaseline != "" {
		if dev.FirmwareBaseline, err = parseVersion(r.FirmwareBaseline); err != nil {
			return nil, errors.Wrapf(err, "device %s firmware_baseline", dev.Name)
		}
	}
	if dev.API, err = canonicalText(r.API); err != nil {
		return nil, errors.Wrapf(err, "device %s api", dev.Name)
	}

	names := make(map[string]bool, len(r.Packets))
	for i := range r.Packets {
		p, err := r.Packets[i].build()
		if err != nil {
			return nil, errors.Wrapf(err, "device %s packet #%d", dev.Name, i+1)
		}
		if names[p.Name] {
			return nil, schemaError(
				errors.Newf("device %s declares packet %s twice", dev.Name, p.Name),
				"packet names must be unique within a device")
		}
		names[p.Name] = true
		dev.Packets = append(dev.Packets, p)
	}
	return dev, nil
}

func (r *rawPacket) build() (*Packet, error) {
	kind, err := ParseKind(r.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, schemaError(errors.New("packet without a name"), "")
	}

	p := &Packet{
		Kind: kind,
		Name: ToPascalCase(strings.TrimSpace(r.Name)),
	}
	p.UnderscoreName = ToSnakeCase(p.Name)

	if p.Doc.Class, err = ParseClassification(r.Doc.Class); err != nil {
		return nil, errors.Wrapf(err, "packet %s", p.Name)
	}
	switch {
	case kind == KindFunction && p.Doc.Class == ClassNone:
		return nil, schemaError(
			errors.Newf("function %s has no section classification", p.Name),
			"set doc.class to bf, af or ccf")
	case kind == KindCallback && p.Doc.Class != ClassNone:
		return nil, schemaError(
			errors.Newf("callback %s classified as %s", p.Name, p.Doc.Class),
			"callbacks take doc.class 'c' or no class at all")
	}
	if p.Doc.Text, err = canonicalText(r.Doc.Text); err != nil {
		return nil, errors.Wrapf(err, "packet %s doc", p.Name)
	}

	if r.SinceFirmware != "" {
		if p.SinceFirmware, err = parseVersion(r.SinceFirmware); err != nil {
			return nil, errors.Wrapf(err, "packet %s since_firmware", p.Name)
		}
	}

	for _, re := range r.Elements {
		e, err := parseElement(re.v)
		if err != nil {
			return nil, errors.Wrapf(err, "packet %s", p.Name)
		}
		if kind == KindCallback && e.Direction == In {
			return nil, schemaError(
				errors.Newf("callback %s has input element %q", p.Name, e.Name),
				"callbacks only deliver 'out' elements")
		}
		p.Elements = append(p.Elements, e)
	}
	return p, nil
}

func parseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimSpace(s))
	if err != nil {
		return nil, schemaError(
			errors.Wrapf(err, "invalid version %q", s),
			"versions are written major.minor.revision, e.g. 2.0.1")
	}
	return v, nil
}

func canonicalText(t i18n.Text) (i18n.Text, error) {
	out, err := t.Canonical()
	if err != nil {
		return nil, schemaError(err, "text keys are language codes such as en or de")
	}
	return out, nil
}
