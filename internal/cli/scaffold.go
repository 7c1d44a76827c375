package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dotup-cli/dotup/internal/apply"
	"github.com/dotup-cli/dotup/internal/config"
	"github.com/dotup-cli/dotup/internal/doctor"
	"github.com/dotup-cli/dotup/internal/recipe"
	"github.com/dotup-cli/dotup/internal/scaffold"
	"github.com/dotup-cli/dotup/internal/ui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scaffoldCmd)
}

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <recipe> [app-type] <project-path>",
	Short: "Create agent rails and starter docs for a new project",
	Long: `Render the full template set for a recipe into a project directory:
agent rails (AGENTS.md, .agents/, .architecture/) plus the recipe's
documentation files. Files that already exist are left untouched.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipeName := args[0]
		appType := ""
		dir := args[1]
		if len(args) == 3 {
			appType = args[1]
			dir = args[2]
		}

		r, err := scaffold.Load(recipeName)
		if err != nil {
			return err
		}
		if appType == "" && len(r.AppTypes) > 1 && !assumeYes {
			appType = ui.Select("Application type", r.AppTypes, r.AppTypes[0])
		}

		data := scaffold.NewData(dir, recipeName, appType, author())

		warnMissingTools(cmd.Context(), r)

		ui.Header(os.Stdout, fmt.Sprintf("Scaffolding %s (%s)", data.Name, recipeName))
		summary, err := scaffold.Scaffold(cmd.Context(), os.Stdout, recipeName, appType, dir, data)
		if err != nil {
			return err
		}
		apply.PrintSummary(os.Stdout, summary)
		return nil
	},
}

// warnMissingTools reports recipe tools that are absent or below the
// declared minimum version. Scaffolding proceeds either way.
func warnMissingTools(ctx context.Context, r *recipe.Recipe) {
	checks := make([]doctor.ToolCheck, 0, len(r.Tools))
	for _, tool := range r.Tools {
		checks = append(checks, doctor.ToolCheck{
			Name:       tool.Name,
			MinVersion: tool.MinVersion,
			Optional:   tool.Optional,
		})
	}
	for _, st := range doctor.CheckTools(ctx, runner, checks) {
		switch st.State {
		case doctor.ToolMissing:
			if !st.Check.Optional {
				ui.Warn(os.Stdout, fmt.Sprintf("! %s is not installed (recipe expects it)", st.Check.Name))
			}
		case doctor.ToolOutdated:
			ui.Warn(os.Stdout, fmt.Sprintf("! %s %s is older than required %s", st.Check.Name, st.Version, st.Check.MinVersion))
		}
	}
}

func author() string {
	if a := config.Get("author"); a != "" {
		return a
	}
	return os.Getenv("USER")
}
