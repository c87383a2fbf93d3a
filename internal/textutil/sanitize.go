package textutil

import (
	"path/filepath"
	"strings"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

const (
	defaultProduction = "DEFAULT"
	defaultEpisode    = "PROD"
)

// ProductionCodes splits a script file name such as "show_ep101_final.tsv"
// into its upper-cased production and episode codes ("SHOW", "EP101").
// Everything after the first '.' is treated as extension, so generated
// files such as "SHOW_EP1.gen.TAB" map back to the same codes. Names without
// two underscore-separated tokens fall back to DEFAULT/PROD.
func ProductionCodes(path string) (string, string) {
	base := filepath.Base(strings.TrimSpace(path))
	base, _, _ = strings.Cut(base, ".")
	tokens := strings.Split(base, "_")
	if len(tokens) < 2 || strings.TrimSpace(tokens[0]) == "" || strings.TrimSpace(tokens[1]) == "" {
		return defaultProduction, defaultEpisode
	}
	return Upper(SanitizeFileName(tokens[0])), Upper(SanitizeFileName(tokens[1]))
}

// OutputName joins the production codes of path with suffix, e.g.
// OutputName("show_ep101.tsv", ".gen.TAB") == "SHOW_EP101.gen.TAB".
func OutputName(path, suffix string) string {
	prod, ep := ProductionCodes(path)
	return prod + "_" + ep + suffix
}
