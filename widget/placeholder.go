package widget

import (
	"fmt"
	"regexp"
	"strconv"
)

// fieldPlaceholder matches {name} and {name:W.P%}, the percentage form of a
// format field.
var fieldPlaceholder = regexp.MustCompile(`\{(\w+)(?::(\d*)\.(\d)%)?\}`)

// field is the value of one placeholder. Ratios are only used with the
// percentage form.
type field struct {
	text  string
	ratio float64
}

// expandFields replaces placeholders in tmpl with fields. {name:W.P%} prints
// ratio*100 with P decimals, right aligned in W columns including the percent
// sign; {name} prints text. Unknown names are left as is.
func expandFields(tmpl string, fields map[string]field) string {
	return fieldPlaceholder.ReplaceAllStringFunc(tmpl, func(s string) string {
		sub := fieldPlaceholder.FindStringSubmatch(s)
		f, ok := fields[sub[1]]
		if !ok {
			return s
		}
		if sub[3] == "" {
			return f.text
		}
		width, _ := strconv.Atoi(sub[2])
		prec, _ := strconv.Atoi(sub[3])
		return fmt.Sprintf("%*s", width, strconv.FormatFloat(f.ratio*100, 'f', prec, 64)+"%")
	})
}
