package stamper

import (
	"github.com/valyala/fasttemplate"
)

// Stamp substitutes {VAR} placeholders in format with
// values from vars. Unknown variables are preserved
// as-is.
func Stamp(format string, vars map[string]string) string {
	stamps := make(map[string]interface{}, len(vars))
	for k, v := range vars {
		stamps[k] = v
	}

	return fasttemplate.ExecuteStringStd(
		format, "{", "}", stamps,
	)
}
