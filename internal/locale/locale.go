// Package locale holds the German and English string tables and the money
// formatting helpers. Lookups never fail: unknown languages fall back to
// English and unknown keys return the caller's default.
package locale

import (
	"fmt"
	"strings"
)

// DefaultLang is the fallback language code.
const DefaultLang = "en"

// Strings is one language's string table.
type Strings struct {
	Title       string
	Scan        string
	Results     string
	Total       string
	TotalFmt    string
	About       string
	Settings    string
	Close       string
	ExitConfirm string
	NoCoin      string
	CameraFail  string
	FrameFail   string
	Tooltips    map[string]string
}

var languages = map[string]Strings{
	"de": {
		Title:       "P R O S E G U R",
		Scan:        "Münzen scannen",
		Results:     "Ergebnisse",
		Total:       "GESAMT: 0,00 €",
		TotalFmt:    "GESAMT: %s €",
		About:       "Über CoinScan",
		Settings:    "Einstellungen",
		Close:       "Schließen",
		ExitConfirm: "Möchten Sie CoinScan wirklich beenden?",
		NoCoin:      "Keine Münze im Zentrum erkannt.",
		CameraFail:  "Kamera konnte nicht geöffnet werden.",
		FrameFail:   "Bild konnte nicht gelesen werden.",
		Tooltips: map[string]string{
			"scan_btn":      "Münzen im Zentrum scannen",
			"size_small":    "Webcam-Auflösung 480x360",
			"contrast":      "Hochkontrast umschalten",
			"flag_de":       "Deutsch wählen",
			"flag_en":       "Englisch wählen",
			"home":          "Start / Ergebnisse löschen",
			"settings":      "Einstellungen öffnen",
			"about":         "Info zu CoinScan",
			"exit":          "Anwendung beenden",
			"webcam":        "Webcam-Vorschau",
			"results_panel": "Erkannte Münzen und Gesamt",
		},
	},
	"en": {
		Title:       "P R O S E G U R",
		Scan:        "Scan Coins",
		Results:     "Results",
		Total:       "TOTAL: €0.00",
		TotalFmt:    "TOTAL: €%s",
		About:       "About CoinScan",
		Settings:    "Settings",
		Close:       "Close",
		ExitConfirm: "Are you sure you want to exit CoinScan?",
		NoCoin:      "No coin detected in centre.",
		CameraFail:  "Camera open failed",
		FrameFail:   "Frame read failed",
		Tooltips: map[string]string{
			"scan_btn":      "Scan coins in centre",
			"size_small":    "Set webcam resolution 480x360",
			"contrast":      "Toggle high-contrast mode",
			"flag_de":       "Switch to German",
			"flag_en":       "Switch to English",
			"home":          "Home / Clear results",
			"settings":      "Open Settings",
			"about":         "About CoinScan",
			"exit":          "Exit application",
			"webcam":        "Webcam preview",
			"results_panel": "Detected coins and totals",
		},
	},
}

// Normalize returns a supported language code, falling back to DefaultLang.
func Normalize(lang string) string {
	if _, ok := languages[lang]; ok {
		return lang
	}
	return DefaultLang
}

// Get returns the string table for a language with English fallback.
func Get(lang string) Strings {
	return languages[Normalize(lang)]
}

// Tooltip fetches a tooltip string by key, or def when the key is unknown.
func Tooltip(lang, key, def string) string {
	if s, ok := Get(lang).Tooltips[key]; ok {
		return s
	}
	return def
}

// FormatAmount renders cents as a two-decimal Euro amount in the language's
// number convention. German uses a decimal comma.
func FormatAmount(lang string, cents int) string {
	s := fmt.Sprintf("%d.%02d", cents/100, cents%100)
	if Normalize(lang) == "de" {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// FormatTotal renders the localized total line for an amount in cents.
func FormatTotal(lang string, cents int) string {
	return fmt.Sprintf(Get(lang).TotalFmt, FormatAmount(lang, cents))
}

// FormatCoin renders one result row: the denomination label followed by its
// localized value, e.g. "1 Euro (€1.00)". Unvalued labels render bare.
func FormatCoin(lang, label string, cents int) string {
	if cents <= 0 {
		return label
	}
	if Normalize(lang) == "de" {
		return fmt.Sprintf("%s (%s €)", label, FormatAmount(lang, cents))
	}
	return fmt.Sprintf("%s (€%s)", label, FormatAmount(lang, cents))
}
