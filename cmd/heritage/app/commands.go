package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wanderstone/heritage"
	"github.com/wanderstone/heritage/internal/embedded"
	"github.com/wanderstone/heritage/internal/validation"
	"github.com/wanderstone/heritage/pkg/constants"
	"github.com/wanderstone/heritage/pkg/publish"
	"github.com/wanderstone/heritage/pkg/sites"
)

// NewBuildCommand creates the build command: run the full pipeline.
func (a *App) NewBuildCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build, validate and publish the dataset",
		Long: `Build reads the per-locale list snapshots and the component export from
the raw directory, merges them into the canonical dataset, and publishes it
to the dataset and serving paths. Any fatal validation violation aborts the
run with a non-zero exit and nothing written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := heritage.New(a.pipelineOptions(dryRun)...)
			if err != nil {
				return err
			}

			report, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			for _, file := range report.Files {
				cmd.Printf("published %s (%d bytes)\n", file.Path, file.Bytes)
			}
			if dryRun {
				cmd.Println("dry run: nothing written")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the full dataset but write nothing")
	return cmd
}

// NewValidateCommand creates the validate command: re-check a published dataset.
func (a *App) NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dataset]",
		Short: "Validate an already published dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, registry, err := a.loadDataset(args)
			if err != nil {
				return err
			}

			result := validation.New(registry.Codes(), registry.Primary()).Validate(list)
			for _, violation := range result.Violations {
				cmd.Println(violation.String())
			}
			if !result.OK() {
				return fmt.Errorf("%d fatal violations", len(result.Fatal()))
			}

			cmd.Printf("ok: %d sites, %d warnings\n", len(list), len(result.Warnings()))
			return nil
		},
	}
}

// NewStatsCommand creates the stats command: print the statistics block.
func (a *App) NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [dataset]",
		Short: "Print dataset statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _, err := a.loadDataset(args)
			if err != nil {
				return err
			}

			cmd.Print(validation.Compute(list).Render())
			return nil
		},
	}
}

// NewInspectCommand creates the inspect command: print one site or component.
// The argument is a site id, a component id, or a visit-scope string.
func (a *App) NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id|scope> [dataset]",
		Short: "Print one site or component",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, registry, err := a.loadDataset(args[1:])
			if err != nil {
				return err
			}

			index := sites.NewIndex(list)

			// A bare site id is shorthand for the whole property.
			scope, err := sites.ParseScope(args[0])
			if err != nil {
				return err
			}
			if scope.IsComponent() {
				if _, err := index.Site(scope.ID); err == nil {
					scope = sites.PropertyScope(scope.ID)
				}
			}

			site, component, err := index.Resolve(scope)
			if err != nil {
				return err
			}

			if site != nil {
				printSite(cmd, site, registry.Primary())
				return nil
			}
			parent, err := index.Parent(component.ComponentID)
			if err != nil {
				return err
			}
			printComponent(cmd, component, parent, registry.Primary())
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("heritage %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// pipelineOptions builds pipeline options from the app configuration.
func (a *App) pipelineOptions(dryRun bool) []heritage.Option {
	opts := []heritage.Option{
		heritage.WithRawDir(a.config.RawDir),
		heritage.WithDatasetPath(a.config.DatasetPath),
		heritage.WithServingPath(a.config.ServingPath),
		heritage.WithDryRun(dryRun),
		heritage.WithLogger(a.logger),
	}
	if len(a.config.Locales) > 0 {
		opts = append(opts, heritage.WithLocales(a.config.Locales...))
	}
	return opts
}

// loadDataset loads a published dataset (explicit path or the configured
// default) along with the locale registry the commands report against.
func (a *App) loadDataset(args []string) ([]*sites.Site, *embedded.Registry, error) {
	path := a.config.DatasetPath
	if path == "" {
		path = constants.DefaultDatasetPath
	}
	if len(args) > 0 {
		path = args[0]
	}

	list, err := publish.Load(path)
	if err != nil {
		return nil, nil, err
	}

	registry, err := embedded.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}
	if len(a.config.Locales) > 0 {
		registry, err = registry.Narrow(a.config.Locales)
		if err != nil {
			return nil, nil, err
		}
	}

	return list, registry, nil
}

func printSite(cmd *cobra.Command, site *sites.Site, primaryLocale string) {
	cmd.Printf("site %s (%s)\n", site.ID, site.AnyName([]string{primaryLocale}))
	cmd.Printf("  category:      %s\n", site.Category)
	cmd.Printf("  coordinates:   (%v, %v)\n", site.Latitude, site.Longitude)
	if site.Region != "" {
		cmd.Printf("  region:        %s\n", site.Region)
	}
	cmd.Printf("  inscribed:     %s\n", site.DateInscribed)
	cmd.Printf("  transboundary: %t\n", site.Transboundary)
	if site.InDanger {
		cmd.Printf("  in danger:     %s\n", site.DangerPeriod)
	}
	cmd.Printf("  locales:       %v\n", site.Locales())
	cmd.Printf("  components:    %d\n", site.ComponentCount)
	for i := range site.Components {
		component := &site.Components[i]
		cmd.Printf("    %s (%v, %v) %s\n",
			component.ComponentID, component.Latitude, component.Longitude,
			component.LocalName(primaryLocale))
	}
}

func printComponent(cmd *cobra.Command, component *sites.Component, parent *sites.Site, primaryLocale string) {
	cmd.Printf("component %s (%s)\n", component.ComponentID, component.LocalName(primaryLocale))
	cmd.Printf("  uri:         %s\n", component.ExternalURI)
	cmd.Printf("  parent:      %s (%s)\n", parent.ID, parent.AnyName([]string{primaryLocale}))
	cmd.Printf("  coordinates: (%v, %v)\n", component.Latitude, component.Longitude)
	if component.AreaKm2 != nil {
		cmd.Printf("  area:        %.2f km²\n", *component.AreaKm2)
	}
	if component.Designation != "" {
		cmd.Printf("  designation: %s\n", component.Designation)
	}
}
