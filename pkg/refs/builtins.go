package refs

const (
	mdnJS  = "https://developer.mozilla.org/en-US/docs/Web/JavaScript/"
	mdnAPI = "https://developer.mozilla.org/en-US/docs/Web/API/"
	nodeJS = "https://nodejs.org/api/"
)

// builtins maps well-known type names to their documentation. Targets that
// are not URLs are relative to the book root.
var builtins = map[string]string{
	"void":            mdnJS + "Reference/Operators/void",
	"null":            mdnJS + "Reference/Global_Objects/null",
	"Array":           mdnJS + "Reference/Global_Objects/Array",
	"boolean":         mdnJS + "Data_structures#Boolean_type",
	"Buffer":          nodeJS + "buffer.html#buffer_class_buffer",
	"function":        mdnJS + "Reference/Global_Objects/Function",
	"number":          mdnJS + "Data_structures#Number_type",
	"Object":          mdnJS + "Reference/Global_Objects/Object",
	"Promise":         mdnJS + "Reference/Global_Objects/Promise",
	"string":          mdnJS + "Data_structures#String_type",
	"stream.Readable": nodeJS + "stream.html#stream_class_stream_readable",
	"Error":           nodeJS + "errors.html#errors_class_error",
	"ChildProcess":    nodeJS + "child_process.html",
	"iterator":        mdnJS + "Reference/Iteration_protocols",
	"Element":         mdnAPI + "element",
	"Map":             mdnJS + "Reference/Global_Objects/Map",
	"selector":        "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Selectors",
	"UIEvent.detail":  mdnAPI + "UIEvent/detail",
	"Serializable":    mdnJS + "Reference/Global_Objects/JSON/stringify#Description",
	"xpath":           "https://developer.mozilla.org/en-US/docs/Web/XPath",
	"UnixTime":        "https://en.wikipedia.org/wiki/Unix_time",
	"Key":             "Enumerations.md#key",
	"MouseButtons":    "Enumerations.md#mousebuttons",
	"Device":          "Enumerations.md#device",
}

// Builtins returns a copy of the built-in reference table.
func Builtins() map[string]string {
	out := make(map[string]string, len(builtins))
	for k, v := range builtins {
		out[k] = v
	}
	return out
}
