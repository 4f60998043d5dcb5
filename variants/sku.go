package variants

import (
	"strings"
)

// SKU builds PREFIX-VALUE1-VALUE2... with values in group order, upper-cased and with
// inner whitespace replaced by underscores.
func SKU(prefix string, groups []AttributeGroup, a Assignment) string {
	var parts []string
	if p := skuPart(prefix); p != "" {
		parts = append(parts, p)
	}
	for _, g := range groups {
		if v, ok := a[g.Name]; ok {
			parts = append(parts, skuPart(v))
		}
	}
	return strings.Join(parts, "-")
}

func skuPart(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), "_"))
}
