package utils

import (
	"strings"

	"tienda-admin/variants"
)

var colorCodes = map[string]string{
	"amarillo":          "AM",
	"amarillo jaspeado": "AM_JS",
	"azul cielo":        "AC",
	"azul petróleo":     "AP",
	"café":              "CF",
	"fucsia":            "FS",
	"gris jaspeado":     "GR_JS",
	"moraleche":         "ML",
	"naranja":           "NA",
	"negro":             "NG",
	"palo de rosa":      "PR",
	"rojo":              "RO",
	"rosa claro":        "RP",
	"rosado":            "RS",
	"tabaco":            "TA",
	"verde limón":       "VL",
	"verde militar":     "VM",
	"verde sapo":        "VS",
}

// NormalizeSize normalizes size values to standard format
// Mini -> MN, Intermedio -> IT
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.TrimSpace(size))

	switch sizeUpper {
	case "MINI", "MN":
		return "MN"
	case "INTERMEDIO", "IT":
		return "IT"
	}
	return sizeUpper
}

// ColorCode maps a colour name to its short catalogue code.
// Unknown colours come back upper-cased.
func ColorCode(color string) string {
	colorLower := strings.ToLower(strings.TrimSpace(color))
	if code, exists := colorCodes[colorLower]; exists {
		return code
	}
	return strings.ToUpper(colorLower)
}

// IsColorAxis reports whether an attribute group name refers to colour.
func IsColorAxis(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "color", "colour", "colores":
		return true
	}
	return false
}

// IsSizeAxis reports whether an attribute group name refers to size.
func IsSizeAxis(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "size", "talla", "tallas":
		return true
	}
	return false
}

// SKUValue is the SKU segment for one attribute value: colour codes for colour axes,
// normalised sizes for size axes, the raw value otherwise.
func SKUValue(group, value string) string {
	switch {
	case IsColorAxis(group):
		return ColorCode(value)
	case IsSizeAxis(group):
		return NormalizeSize(value)
	}
	return value
}

// ColorSizeAxes returns the names of the colour and size groups. ok is false when either is missing.
func ColorSizeAxes(groups []variants.AttributeGroup) (color, size string, ok bool) {
	for _, g := range groups {
		switch {
		case color == "" && IsColorAxis(g.Name):
			color = g.Name
		case size == "" && IsSizeAxis(g.Name):
			size = g.Name
		}
	}
	return color, size, color != "" && size != ""
}

// VariantSKU builds the SKU of one combination using catalogue codes for colours and sizes.
func VariantSKU(prefix string, groups []variants.AttributeGroup, a variants.Assignment) string {
	coded := make(variants.Assignment, len(a))
	for k, v := range a {
		coded[k] = SKUValue(k, v)
	}
	return variants.SKU(prefix, groups, coded)
}
