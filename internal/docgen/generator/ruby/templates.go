package ruby

import (
	"github.com/Alia5/bindoc/internal/docgen/common"
	"github.com/Alia5/bindoc/internal/i18n"
)

// templateData feeds every Ruby document template.
type templateData struct {
	Cls            string // BrickletTemperature
	Device         string // temperature
	ExamplesLabel  string // temperature_bricklet_ruby_examples
	HasExamples    bool
	CallbacksLabel string // temperature_bricklet_ruby_callbacks
	RegisterTarget string // BrickletTemperature#register_callback
}

var wordForms = map[string]i18n.Text{
	"parameter":  {"en": "parameter", "de": "Parameter"},
	"parameters": {"en": "parameters", "de": "Parameter"},
}

var (
	labelFirmware = i18n.Text{"en": "Firmware", "de": "Firmware"}
	labelPlugin   = i18n.Text{"en": "Plugin", "de": "Plugin"}
)

var (
	titleBasic    = common.Localized{"en": "Basic Functions", "de": "Grundfunktionen"}
	titleAdvanced = common.Localized{"en": "Advanced Functions", "de": "Fortgeschrittene Funktionen"}
	titleCCF      = common.Localized{"en": "Callback Configuration Functions", "de": "Konfigurationsfunktionen für Callbacks"}
	titleCallback = common.Localized{"en": "Callbacks", "de": "Callbacks"}
)

var apiIntro = common.Localized{
	"en": "All methods listed below are thread-safe.\n",
	"de": "Alle folgend aufgelisteten Methoden sind Thread-sicher.\n",
}

var constructorText = common.Localized{
	"en": `.. rb:function:: {{.Cls}}::new(uid, ipcon) -> {{.Device}}

 Creates an object with the unique device ID *uid*:

 .. code-block:: ruby

    {{.Device}} = {{.Cls}}.new 'YOUR_DEVICE_UID', ipcon

 This object can then be used after the IP connection is connected{{if .HasExamples}}
 (see examples {{ref "above" .ExamplesLabel}}){{end}}.
`,
	"de": `.. rb:function:: {{.Cls}}::new(uid, ipcon) -> {{.Device}}

 Erzeugt ein Objekt mit der eindeutigen Geräte ID *uid*:

 .. code-block:: ruby

    {{.Device}} = {{.Cls}}.new 'YOUR_DEVICE_UID', ipcon

 Dieses Objekt kann benutzt werden, nachdem die IP Connection verbunden ist{{if .HasExamples}}
 (siehe Beispiele {{ref "oben" .ExamplesLabel}}){{end}}.
`,
}

var versionText = common.Localized{
	"en": `.. rb:function:: {{.Cls}}#get_version -> [int, int, int]

 Returns API version [major, minor, revision] used for this device.
`,
	"de": `.. rb:function:: {{.Cls}}#get_version -> [int, int, int]

 Gibt die API Version [major, minor, revision] die benutzt
 wird zurück.
`,
}

var registerText = common.Localized{
	"en": `.. rb:function:: {{.Cls}}#register_callback(cb) { |param [, ...]| block } -> nil

 :param cb: int

 Registers a callback with ID *cb* to the given block. The available
 IDs with corresponding function signatures are listed
 {{ref "below" .CallbacksLabel}}.
`,
	"de": `.. rb:function:: {{.Cls}}#register_callback(cb) { |param [, ...]| block } -> nil

 :param cb: int

 Registriert einen Callback mit der ID *cb* in den gegebenen Block. Die verfügbaren
 IDs mit den zugehörigen Funktionssignaturen sind {{ref "unten" .CallbacksLabel}}
 zu finden.
`,
}

var callbacksText = common.Localized{
	"en": `*Callbacks* can be registered with *callback IDs* to receive
time critical or recurring data from the device. The registration is done
with the {{role "rb:func" "#register_callback" .RegisterTarget}} function of
the device object. The first parameter is the callback ID and the second
parameter is a block:

.. code-block:: ruby

    {{.Device}}.register_callback {{.Cls}}::CALLBACK_EXAMPLE, do |param|
      puts "#{param}"
    end

The available constants with inherent number and type of parameters are
described below.

.. note::
 Using callbacks for recurring events is *always* preferred
 compared to using getters. It will use less USB bandwidth and the latency
 will be a lot better, since there is no round trip time.
`,
	"de": `*Callbacks* können mit *callback IDs* registriert werden um zeitkritische
oder wiederkehrende Daten vom Gerät zu erhalten. Die Registrierung kann
mit der Funktion {{role "rb:func" "#register_callback" .RegisterTarget}} des
Geräte Objektes durchgeführt werden. Der erste Parameter ist der Callback ID
und der zweite Parameter der Block:

.. code-block:: ruby

    {{.Device}}.register_callback {{.Cls}}::CALLBACK_EXAMPLE, do |param|
      puts "#{param}"
    end

Die verfügbaren Konstanten mit der dazugehörigen Parameteranzahl und -typen werden
weiter unten beschrieben.

.. note::
 Callbacks für wiederkehrende Ereignisse zu verwenden ist
 *immer* zu bevorzugen gegenüber der Verwendung von Abfragen.
 Es wird weniger USB-Bandbreite benutzt und die Latenz ist
 erheblich geringer, da es keine Paketumlaufzeit gibt.
`,
}
