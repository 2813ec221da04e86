package cli

import (
	"github.com/spf13/cobra"

	"github.com/inklab/merview/pkg/diagram"
)

// newDetectCmd creates the detect command, which reports the diagram kind
// of a source file without parsing it fully.
func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect [file]",
		Short: "Report the diagram kind of a source file",
		Long:  `Detect reads diagram text (from a file or stdin) and prints the detected diagram kind. Kinds without a parser are reported but marked unsupported.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			source, err := readSource(path)
			if err != nil {
				return err
			}

			kind := diagram.Detect(source)
			printKeyValue("kind", string(kind))
			if !kind.Supported() {
				printWarning("diagrams of kind %q render as a raw-text panel", kind)
			}
			return nil
		},
	}
}
