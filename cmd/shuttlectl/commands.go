package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/faq"
	"github.com/zinklake/shuttle/internal/domain/ride"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shuttlectl",
		Short:         "Inspect the shuttle FAQ catalog and ride tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFaqCmd(), newRideCmd())
	return root
}

func newFaqCmd() *cobra.Command {
	var catalogPath string

	faqCmd := &cobra.Command{
		Use:   "faq",
		Short: "Query the FAQ catalog",
	}
	faqCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "FAQ catalog YAML (defaults to the bundled catalog)")

	var category string
	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Filter and group FAQ entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := catalog.LoadFaqs(catalogPath)
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			c := entities.Category(category)
			sections := faq.SortedSections(faq.Group(faq.Filter(entries, query, c), c))
			return printSections(cmd.OutOrStdout(), sections)
		},
	}
	searchCmd.Flags().StringVarP(&category, "category", "c", string(entities.CategoryAll), "category to filter by")

	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := catalog.LoadFaqs(catalogPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\t%d\n", entities.CategoryAll, len(entries))
			for _, c := range entities.KnownCategories {
				fmt.Fprintf(out, "%s\t%d\n", c, len(faq.Filter(entries, "", c)))
			}
			return nil
		},
	}

	faqCmd.AddCommand(searchCmd, categoriesCmd)
	return faqCmd
}

func printSections(out io.Writer, sections []entities.FaqSection) error {
	if len(sections) == 0 || (len(sections) == 1 && len(sections[0].Entries) == 0) {
		_, err := fmt.Fprintln(out, "no matching questions")
		return err
	}
	for _, section := range sections {
		fmt.Fprintf(out, "== %s ==\n", section.Category)
		for _, entry := range section.Entries {
			fmt.Fprintf(out, "[%s] %s\n", entry.ID, entry.Question)
		}
	}
	return nil
}

func newRideCmd() *cobra.Command {
	var policy string

	rideCmd := &cobra.Command{
		Use:   "ride",
		Short: "Evaluate the ride tracker",
	}
	rideCmd.PersistentFlags().StringVar(&policy, "policy", string(ride.CancelledPolicyHide), "tracker policy for cancelled rides (hide|reset)")

	progressCmd := &cobra.Command{
		Use:   "progress <status>",
		Short: "Show the tracker for a ride status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ride.ParseCancelledPolicy(policy)
			if err != nil {
				return err
			}
			status := entities.RideStatus(args[0])
			printTracker(cmd.OutOrStdout(), ride.Describe(status), ride.Steps(status, p))
			return nil
		},
	}

	var ridesPath string
	trackCmd := &cobra.Command{
		Use:   "track",
		Short: "Show the active and upcoming rides of a ride feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ride.ParseCancelledPolicy(policy)
			if err != nil {
				return err
			}
			rides, err := catalog.LoadRides(ridesPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if active, ok := ride.ActiveRide(rides); ok {
				fmt.Fprintf(out, "Active: %s %s -> %s\n", active.ID, active.Pickup, active.Dropoff)
				printTracker(out, ride.Describe(active.Status), ride.Steps(active.Status, p))
			} else {
				fmt.Fprintln(out, "Active: none")
			}

			upcoming := ride.UpcomingRides(rides)
			fmt.Fprintf(out, "Upcoming: %d\n", len(upcoming))
			for _, r := range upcoming {
				fmt.Fprintf(out, "  %s %s %s -> %s\n", r.ID, r.ScheduledTime, r.Pickup, r.Dropoff)
			}
			return nil
		},
	}
	trackCmd.Flags().StringVar(&ridesPath, "rides-file", "", "ride feed YAML (defaults to the bundled feed)")

	rideCmd.AddCommand(progressCmd, trackCmd)
	return rideCmd
}

func printTracker(out io.Writer, info entities.StatusInfo, tracker entities.Tracker) {
	fmt.Fprintf(out, "%s: %s\n", info.Label, info.Description)
	if !tracker.Visible {
		fmt.Fprintln(out, "tracker hidden")
		return
	}
	marks := make([]string, 0, len(tracker.Steps))
	for _, step := range tracker.Steps {
		switch {
		case step.Completed:
			marks = append(marks, "[x] "+step.Label)
		case step.Current:
			marks = append(marks, "[>] "+step.Label)
		default:
			marks = append(marks, "[ ] "+step.Label)
		}
	}
	fmt.Fprintf(out, "step %d: %s\n", tracker.StepIndex, strings.Join(marks, "  "))
}
