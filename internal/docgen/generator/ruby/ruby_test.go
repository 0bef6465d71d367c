package ruby

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Alia5/bindoc/internal/docgen/meta"
	"github.com/Alia5/bindoc/internal/i18n"
	"github.com/Alia5/bindoc/internal/schema"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func out(name, typ string, length int) schema.Element {
	return schema.Element{Name: name, Type: typ, Length: length, Direction: schema.Out}
}

func in(name, typ string, length int) schema.Element {
	return schema.Element{Name: name, Type: typ, Length: length, Direction: schema.In}
}

func text(en, de string) i18n.Text {
	return i18n.Text{"en": en, "de": de}
}

func temperatureDevice(withCallback bool) *schema.Device {
	d := &schema.Device{
		Category:       "Bricklet",
		Name:           "Temperature",
		UnderscoreName: "temperature",
		DisplayName:    "Temperature",
		Packets: []*schema.Packet{{
			Kind:           schema.KindFunction,
			Name:           "GetTemperature",
			UnderscoreName: "get_temperature",
			Elements:       []schema.Element{out("temperature", "int32", 1)},
			Doc: schema.Doc{
				Class: schema.ClassBasic,
				Text:  text("Returns the temperature.", "Gibt die Temperatur zurück."),
			},
		}},
	}
	if withCallback {
		d.Packets = append(d.Packets,
			&schema.Packet{
				Kind:           schema.KindFunction,
				Name:           "SetTemperatureCallbackPeriod",
				UnderscoreName: "set_temperature_callback_period",
				Elements:       []schema.Element{in("period", "uint32", 1)},
				Doc: schema.Doc{
					Class: schema.ClassCallbackConfig,
					Text:  text("Sets the period of :func:`Temperature`.", "Setzt die Periode von :func:`Temperature`."),
				},
			},
			&schema.Packet{
				Kind:           schema.KindCallback,
				Name:           "Temperature",
				UnderscoreName: "temperature",
				Elements:       []schema.Element{out("temperature", "int32", 1)},
				Doc: schema.Doc{
					Text: text("Triggered periodically, see :func:`GetTemperature`.", "Wird periodisch ausgelöst, siehe :func:`GetTemperature`."),
				},
			})
	}
	return d
}

func docContext(dev *schema.Device, lang i18n.Lang) *meta.DocContext {
	return &meta.DocContext{
		Device:    dev,
		Lang:      lang,
		Binding:   Binding,
		Generated: time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		Version:   "1.0.0",
	}
}

func render(t *testing.T, dev *schema.Device, lang i18n.Lang) string {
	t.Helper()
	doc, err := Render(docContext(dev, lang))
	require.NoError(t, err)
	return doc
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, output)
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output unexpectedly contains %q", substr)
	}
}

func mustOrder(t *testing.T, output string, parts ...string) {
	t.Helper()
	last := -1
	for _, p := range parts {
		idx := strings.Index(output, p)
		if idx < 0 {
			t.Errorf("output does not contain %q", p)
			return
		}
		if idx <= last {
			t.Errorf("%q appears out of order", p)
		}
		last = idx
	}
}

func TestMapType(t *testing.T) {
	tests := []struct {
		name string
		el   schema.Element
		want string
	}{
		{name: "int8", el: out("v", "int8", 1), want: "int"},
		{name: "uint64", el: out("v", "uint64", 1), want: "int"},
		{name: "bool", el: out("v", "bool", 1), want: "bool"},
		{name: "char", el: out("v", "char", 1), want: "str"},
		{name: "float", el: out("v", "float", 1), want: "float"},
		{name: "int array", el: out("v", "int16", 3), want: "[int, int, int]"},
		{name: "bool array", el: out("v", "bool", 2), want: "[bool, bool]"},
		{name: "string array", el: out("v", "string", 32), want: "str"},
		{name: "char array", el: out("v", "char", 4), want: "str"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapType(tt.el)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapTypeArrayCardinality(t *testing.T) {
	for n := 2; n <= 16; n++ {
		got, err := MapType(out("v", "uint8", n))
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(got, tokenInt), "length %d", n)
		assert.Equal(t, n-1, strings.Count(got, ", "), "length %d", n)
		assert.True(t, strings.HasPrefix(got, "[") && strings.HasSuffix(got, "]"))
	}
}

func TestMapTypeUnknown(t *testing.T) {
	_, err := MapType(out("v", "int128", 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrSchema))
}

func TestMapTypeRejectsOversizedArrays(t *testing.T) {
	_, err := MapType(out("v", "uint8", 100000000))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrSchema))

	got, err := MapType(out("v", "string", schema.MaxElementLength))
	require.NoError(t, err)
	assert.Equal(t, "str", got)
}

func TestReturnType(t *testing.T) {
	tests := []struct {
		name     string
		elements []schema.Element
		want     string
	}{
		{name: "none", elements: []schema.Element{in("a", "int8", 1)}, want: "nil"},
		{name: "one", elements: []schema.Element{out("a", "int32", 1)}, want: "int"},
		{name: "one array", elements: []schema.Element{out("a", "int32", 2)}, want: "[int, int]"},
		{name: "several", elements: []schema.Element{out("a", "int32", 1), in("x", "int8", 1), out("b", "bool", 1), out("c", "string", 8)}, want: "[int, bool, str]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := returnType(&schema.Packet{Elements: tt.elements})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignatures(t *testing.T) {
	p := &schema.Packet{
		Kind:           schema.KindFunction,
		Name:           "SetRange",
		UnderscoreName: "set_range",
		Elements:       []schema.Element{in("min", "uint16", 1), in("max", "uint16", 1), out("ok", "bool", 1)},
	}
	sig, err := functionSignature("BrickletTemperature", p)
	require.NoError(t, err)
	assert.Equal(t, ".. rb:function:: BrickletTemperature#set_range(min, max) -> bool", sig)

	p = &schema.Packet{Kind: schema.KindFunction, Name: "Reset", UnderscoreName: "reset"}
	sig, err = functionSignature("BrickServo", p)
	require.NoError(t, err)
	assert.Equal(t, ".. rb:function:: BrickServo#reset -> nil", sig)

	cb := &schema.Packet{Kind: schema.KindCallback, Name: "Temperature", UnderscoreName: "temperature"}
	assert.Equal(t, ".. rb:attribute:: BrickletTemperature::CALLBACK_TEMPERATURE", callbackSignature("BrickletTemperature", cb))

	desc, err := parameterDesc(p.In())
	require.NoError(t, err)
	assert.Empty(t, desc)

	desc, err = parameterDesc([]schema.Element{in("values", "uint8", 2), in("name", "string", 10)})
	require.NoError(t, err)
	assert.Equal(t, " :param values: [int, int]\n :param name: str\n", desc)
}

func TestFormatDocCrossReferences(t *testing.T) {
	dev := temperatureDevice(true)
	r, err := newRenderer(docContext(dev, i18n.English))
	require.NoError(t, err)

	doc, err := r.formatDoc(dev.Packets[1])
	require.NoError(t, err)
	assert.Equal(t, " Sets the period of :rb:attr:`::CALLBACK_TEMPERATURE <BrickletTemperature::CALLBACK_TEMPERATURE>`.", doc)

	doc, err = r.formatDoc(dev.Packets[2])
	require.NoError(t, err)
	assert.Equal(t, " Triggered periodically, see :rb:func:`#get_temperature <BrickletTemperature#get_temperature>`.", doc)

	again, err := r.formatDoc(dev.Packets[2])
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestFormatDocMarkup(t *testing.T) {
	dev := &schema.Device{
		Category:       "Brick",
		Name:           "Servo",
		UnderscoreName: "servo",
		Features:       []string{"calibration"},
	}
	p := &schema.Packet{
		Kind:           schema.KindFunction,
		Name:           "SetPosition",
		UnderscoreName: "set_position",
		SinceFirmware:  semver.MustParse("2.1.0"),
		Doc: schema.Doc{
			Class: schema.ClassBasic,
			Text: text(
				"Sets the :word:`parameters`.\n.. if:: calibration\nCalibrated.\n.. endif::\n.. if:: bricklet\nBricklet only.\n.. endif::\n",
				"Setzt die :word:`parameters`.\n.. if:: calibration\nKalibriert.\n.. endif::\n"),
		},
	}
	dev.Packets = []*schema.Packet{p}

	r, err := newRenderer(docContext(dev, i18n.English))
	require.NoError(t, err)
	doc, err := r.formatDoc(p)
	require.NoError(t, err)
	assert.Equal(t, " Sets the parameters.\n Calibrated.\n\n .. versionadded:: 2.1.0 (Firmware)", doc)

	r, err = newRenderer(docContext(dev, i18n.German))
	require.NoError(t, err)
	doc, err = r.formatDoc(p)
	require.NoError(t, err)
	assert.Equal(t, " Setzt die Parameter.\n Kalibriert.\n\n .. versionadded:: 2.1.0 (Firmware)", doc)

	dev.Category = "Bricklet"
	r, err = newRenderer(docContext(dev, i18n.English))
	require.NoError(t, err)
	doc, err = r.formatDoc(p)
	require.NoError(t, err)
	mustContain(t, doc, "Bricklet only.")
	mustContain(t, doc, "(Plugin)")
}

func TestFormatDocBadMarkup(t *testing.T) {
	dev := temperatureDevice(false)
	dev.Packets[0].Doc.Text = text(".. if:: calibration\nunterminated", "x")

	_, err := Render(docContext(dev, i18n.English))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrSchema))
}

func TestRenderWithoutCallbacks(t *testing.T) {
	doc := render(t, temperatureDevice(false), i18n.English)

	mustContain(t, doc, ".. _temperature_bricklet_ruby_api:\n\nAPI\n---\n\nAll methods listed below are thread-safe.\n")
	mustContain(t, doc, ".. rb:function:: BrickletTemperature::new(uid, ipcon) -> temperature\n")
	mustContain(t, doc, "temperature = BrickletTemperature.new 'YOUR_DEVICE_UID', ipcon")
	mustContain(t, doc, " This object can then be used after the IP connection is connected.\n")
	mustNotContain(t, doc, "_examples>`")
	mustContain(t, doc, ".. rb:function:: BrickletTemperature#get_temperature -> int\n\n Returns the temperature.\n")
	mustContain(t, doc, "Advanced Functions\n^^^^^^^^^^^^^^^^^^\n\n.. rb:function:: BrickletTemperature#get_version -> [int, int, int]\n")
	mustOrder(t, doc, "Basic Functions\n", "::new(uid, ipcon)", "#get_temperature", "Advanced Functions\n", "#get_version")

	mustNotContain(t, doc, "Callbacks")
	mustNotContain(t, doc, "register_callback")
	mustNotContain(t, doc, "Callback Configuration Functions")
	assert.True(t, strings.HasSuffix(doc, " Returns API version [major, minor, revision] used for this device.\n"))
}

func TestRenderWithCallbacks(t *testing.T) {
	doc := render(t, temperatureDevice(true), i18n.English)

	mustOrder(t, doc,
		"Basic Functions\n",
		"Advanced Functions\n",
		"#get_version",
		"Callback Configuration Functions\n",
		".. rb:function:: BrickletTemperature#register_callback(cb) { |param [, ...]| block } -> nil\n\n :param cb: int\n",
		":ref:`below <temperature_bricklet_ruby_callbacks>`",
		".. rb:function:: BrickletTemperature#set_temperature_callback_period(period) -> nil\n\n :param period: int\n",
		".. _temperature_bricklet_ruby_callbacks:\n\nCallbacks\n^^^^^^^^^\n",
		":rb:func:`#register_callback <BrickletTemperature#register_callback>`",
		"temperature.register_callback BrickletTemperature::CALLBACK_EXAMPLE, do |param|",
		".. note::",
		".. rb:attribute:: BrickletTemperature::CALLBACK_TEMPERATURE\n\n :param temperature: int\n\n Triggered periodically",
	)
	assert.Equal(t, 1, strings.Count(doc, ".. rb:attribute::"))
}

func TestRenderSectionOrder(t *testing.T) {
	dev := temperatureDevice(false)
	dev.Packets = append(dev.Packets, &schema.Packet{
		Kind:           schema.KindFunction,
		Name:           "SetDebounce",
		UnderscoreName: "set_debounce",
		Elements:       []schema.Element{in("debounce", "uint32", 1)},
		Doc:            schema.Doc{Class: schema.ClassAdvanced, Text: text("Sets the debounce.", "Setzt die Entprellzeit.")},
	})
	doc := render(t, dev, i18n.English)

	mustOrder(t, doc, "Basic Functions\n", "#get_temperature", "Advanced Functions\n", "#set_debounce(debounce)", "#get_version")
	after := doc[strings.Index(doc, "#get_version"):]
	mustNotContain(t, after, ".. rb:function::")
}

func TestRenderWithoutBasicFunctions(t *testing.T) {
	dev := temperatureDevice(false)
	dev.Packets[0].Doc.Class = schema.ClassAdvanced
	doc := render(t, dev, i18n.English)

	mustNotContain(t, doc, "Basic Functions")
	mustContain(t, doc, "thread-safe.\n\n.. rb:function:: BrickletTemperature::new(uid, ipcon)")
	mustOrder(t, doc, "::new(uid, ipcon)", "Advanced Functions\n", "#get_temperature", "#get_version")
}

func TestRenderGerman(t *testing.T) {
	dev := temperatureDevice(true)
	dev.API = text("Misst Temperatur.", "Misst Temperatur.")
	dev.API["en"] = "Measures temperature."
	doc := render(t, dev, i18n.German)

	mustContain(t, doc, "Alle folgend aufgelisteten Methoden sind Thread-sicher.\n\nMisst Temperatur.\n")
	mustContain(t, doc, "Grundfunktionen\n^^^^^^^^^^^^^^^\n")
	mustContain(t, doc, "Fortgeschrittene Funktionen\n")
	mustContain(t, doc, "Konfigurationsfunktionen für Callbacks\n"+strings.Repeat("^", 38)+"\n")
	mustContain(t, doc, "Gibt die API Version [major, minor, revision] die benutzt\n wird zurück.")
	mustContain(t, doc, "Erzeugt ein Objekt mit der eindeutigen Geräte ID *uid*")
	mustContain(t, doc, ":ref:`Ruby Bindings <api_bindings_ruby>`")
	mustNotContain(t, doc, "thread-safe")
	mustNotContain(t, doc, "Measures temperature.")
}

func TestRenderMissingLanguage(t *testing.T) {
	dev := temperatureDevice(false)
	dev.Packets[0].Doc.Text = i18n.Text{"en": "Only English."}

	_, err := Render(docContext(dev, i18n.German))
	require.Error(t, err)
	assert.True(t, errors.Is(err, i18n.ErrMissingLanguage))
	assert.Contains(t, err.Error(), "GetTemperature")

	_, err = Render(docContext(dev, i18n.English))
	assert.NoError(t, err)
}

func TestRenderIsDeterministicAndTidy(t *testing.T) {
	for _, lang := range []i18n.Lang{i18n.English, i18n.German} {
		t.Run(string(lang), func(t *testing.T) {
			first := render(t, temperatureDevice(true), lang)
			second := render(t, temperatureDevice(true), lang)
			assert.Equal(t, first, second)
			assert.NotContains(t, first, "\n\n\n")
			assert.True(t, strings.HasSuffix(first, "\n"))
			assert.False(t, strings.HasSuffix(first, "\n\n"))
		})
	}
}

func TestRenderInsertsExamplesVerbatim(t *testing.T) {
	ctx := docContext(temperatureDevice(false), i18n.English)
	ctx.Examples = ".. _temperature_bricklet_ruby_examples:\n\nExamples\n--------\n\nEXAMPLE BODY\n"
	doc, err := Render(ctx)
	require.NoError(t, err)
	mustOrder(t, doc, "installation guide", "EXAMPLE BODY", ".. _temperature_bricklet_ruby_api:")
	mustContain(t, doc, " This object can then be used after the IP connection is connected\n (see examples :ref:`above <temperature_bricklet_ruby_examples>`).\n")

	ctx.Lang = i18n.German
	doc, err = Render(ctx)
	require.NoError(t, err)
	mustContain(t, doc, "(siehe Beispiele :ref:`oben <temperature_bricklet_ruby_examples>`).\n")
}

func ExampleMapType() {
	t, _ := MapType(schema.Element{Name: "rgb", Type: "uint8", Length: 3, Direction: schema.Out})
	fmt.Println(t)
	// Output: [int, int, int]
}
