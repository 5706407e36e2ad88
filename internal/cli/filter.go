package cli

import (
	"fmt"
	"strings"

	"github.com/annel0/navmesh-editor/internal/area"
	"github.com/annel0/navmesh-editor/internal/filter"
	"github.com/spf13/cobra"
)

// NewFilterCmd создаёт команду "filter"
func NewFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter <label>...",
		Short: "Evaluate the query filter pass rule for area labels",
		Long: "Evaluate the query filter pass rule for area labels.\n" +
			"Masks default to the config's filter section; flags override it.",
		Args: cobra.MinimumNArgs(1),
		RunE: runFilter,
	}
	cmd.Flags().StringSlice("include", nil, "Area types to include (default: all)")
	cmd.Flags().StringSlice("exclude", nil, "Area types to exclude")
	cmd.Flags().Bool("skip-disabled", false, "Also reject tags carrying the disabled flag")
	cmd.Flags().Bool("strict", false, "Exit with a non-zero code if any label is rejected")
	return cmd
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fc := cfg.Filter
	if cmd.Flags().Changed("include") {
		fc.Include, _ = cmd.Flags().GetStringSlice("include")
	}
	if cmd.Flags().Changed("exclude") {
		fc.Exclude, _ = cmd.Flags().GetStringSlice("exclude")
	}

	include, err := fc.IncludeMask()
	if err != nil {
		return exitError(exitUsage, "--include: %v", err)
	}
	exclude, err := fc.ExcludeMask()
	if err != nil {
		return exitError(exitUsage, "--exclude: %v", err)
	}

	qf := filter.NewQueryFilter(filter.WithInclude(include), filter.WithExclude(exclude))
	var f filter.Filter = qf
	if skip, _ := cmd.Flags().GetBool("skip-disabled"); skip {
		f = filter.NewFlagGate(qf, area.FlagDisabled)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "include=0x%08x exclude=0x%08x\n", include, exclude)

	var rejected []string
	for _, label := range args {
		tag, err := area.Parse(label)
		if err != nil {
			return exitError(exitUsage, "%v", err)
		}
		verdict := "pass"
		if !f.PassFilter(filter.Surface{Tag: tag}) {
			verdict = "reject"
			rejected = append(rejected, label)
		}
		fmt.Fprintf(out, "%-24s %s\n", tag, verdict)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && len(rejected) > 0 {
		return exitError(exitRejected, "rejected: %s", strings.Join(rejected, ", "))
	}
	return nil
}
