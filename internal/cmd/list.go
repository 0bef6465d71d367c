package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Alia5/bindoc/internal/schema"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

type List struct {
	Schemas string   `help:"Directory containing device schema files" default:"./schemas" env:"BINDOC_SCHEMAS"`
	Device  []string `help:"Only list the named devices" env:"BINDOC_DEVICE"`
	Plain   bool     `help:"Print tab-separated rows even on a terminal"`
}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	all, err := schema.LoadDir(l.Schemas)
	if err != nil {
		return err
	}
	devices, err := schema.Select(all, l.Device)
	if err != nil {
		return err
	}
	logger.Debug("Listing devices", "count", len(devices))

	rows := deviceRows(devices)
	if !l.Plain && term.IsTerminal(int(os.Stdout.Fd())) {
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}
	return writePlain(os.Stdout, rows)
}

func deviceRows(devices []*schema.Device) pterm.TableData {
	rows := pterm.TableData{{"Category", "Name", "Functions", "Callbacks", "Languages", "Source"}}
	for _, d := range devices {
		rows = append(rows, []string{
			d.Category,
			d.Name,
			strconv.Itoa(len(d.Functions())),
			strconv.Itoa(len(d.Callbacks())),
			strings.Join(deviceLangs(d), ","),
			filepath.Base(d.Source),
		})
	}
	return rows
}

// deviceLangs returns the languages present in every packet text of d.
func deviceLangs(d *schema.Device) []string {
	var langs []string
	for i, p := range d.Packets {
		if i == 0 {
			langs = p.Doc.Text.Langs()
			continue
		}
		kept := langs[:0]
		for _, l := range langs {
			if _, ok := p.Doc.Text[l]; ok {
				kept = append(kept, l)
			}
		}
		langs = kept
	}
	return langs
}

func writePlain(w io.Writer, rows pterm.TableData) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r, "\t")); err != nil {
			return err
		}
	}
	return nil
}
