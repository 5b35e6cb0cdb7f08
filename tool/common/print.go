package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gravitational/hostalarm/lib/constants"

	"github.com/fatih/color"
	"github.com/ghodss/yaml"
	"github.com/gravitational/trace"
)

// PrintError prints the red error message to the console
func PrintError(err error) {
	color.Red("[ERROR]: %v\n", trace.UserMessage(err))
}

// PrintHeader formats the provided string as a header and prints it to the console
func PrintHeader(val string) {
	fmt.Printf("\n[%v]\n%v\n", val, strings.Repeat("-", len(val)+2))
}

// PrintEncoded writes value to w in the specified structured format
func PrintEncoded(w io.Writer, value interface{}, format constants.Format) error {
	var bytes []byte
	var err error
	switch format {
	case constants.EncodingJSON:
		bytes, err = json.MarshalIndent(value, "", "    ")
	case constants.EncodingYAML:
		bytes, err = yaml.Marshal(value)
	default:
		return trace.BadParameter("unknown output format %q, supported are: %v",
			format, constants.OutputFormats)
	}
	if err != nil {
		return trace.Wrap(err)
	}
	fmt.Fprintln(w, string(bytes))
	return nil
}
