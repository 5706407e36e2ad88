package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/spf13/cobra"
)

// NewAreasCmd создаёт команду "areas"
func NewAreasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "areas [label...]",
		Short: "Print the area type/flag table or decode labels like road|door",
		RunE:  runAreas,
	}
}

func runAreas(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(args) > 0 {
		fmt.Fprintln(w, "LABEL\tTAG\tTYPE\tFLAGS\tCOLOR")
		for _, label := range args {
			tag, err := area.Parse(label)
			if err != nil {
				return exitError(exitUsage, "%v", err)
			}
			fmt.Fprintf(w, "%s\t0x%08x\t0x%06x\t0x%08x\t#%08x\n",
				tag, uint32(tag), uint32(area.TypeOf(tag)), uint32(area.FlagsOf(tag)), area.Color(tag))
		}
		return nil
	}

	fmt.Fprintln(w, "KIND\tNAME\tVALUE\tCOLOR")
	for _, t := range area.Types() {
		fmt.Fprintf(w, "type\t%s\t0x%08x\t#%08x\n", area.Name(t), uint32(t), area.Color(t))
	}
	for _, f := range area.Flags() {
		fmt.Fprintf(w, "flag\t%s\t0x%08x\t\n", area.FlagName(f), uint32(f))
	}
	fmt.Fprintf(w, "mask\ttype\t0x%08x\t\n", uint32(area.TypeMask))
	return nil
}
