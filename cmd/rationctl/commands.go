package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/service/rations"
	"github.com/mamadbah2/feedration/internal/service/reporting"
	"github.com/mamadbah2/feedration/pkg/logger"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		category string
		profile  models.AnimalProfile
		items    []string
		asJSON   bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a ration against an animal's requirements",
		Example: `  rationctl evaluate --category cattle --breed holstein --weight 450 --gain 1.2 \
    --item corn_silage=15 --item barley=4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := models.ParseCategory(category)
			if err != nil {
				return err
			}
			profile.Category = c
			if !finite(profile.LiveWeightKg) || !finite(profile.DailyGainKg) {
				return fmt.Errorf("--weight and --gain must be finite numbers")
			}

			ration, err := parseItems(items)
			if err != nil {
				return err
			}

			eval := rations.Evaluate(a.holder.Current(), profile, ration)

			if save {
				svc, err := a.service(cmd.Context())
				if err != nil {
					return err
				}
				rec, err := svc.Save(cmd.Context(), profile, ration)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved as record %d\n", rec.ID)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), eval)
			}
			return printEvaluation(cmd.OutOrStdout(), eval)
		},
	}

	f := cmd.Flags()
	f.StringVar(&category, "category", "", "animal category: cattle, sheep or goat")
	f.StringVar(&profile.BreedID, "breed", "", "breed id")
	f.Float64Var(&profile.LiveWeightKg, "weight", 0, "live weight in kg")
	f.Float64Var(&profile.DailyGainKg, "gain", 0, "target daily gain in kg")
	f.IntVar(&profile.AgeMonths, "age", 0, "age in months")
	f.StringArrayVar(&items, "item", nil, "ration line as feed_id=kg, repeatable")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	f.BoolVar(&save, "save", false, "archive the ration")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// parseItems reads feed_id=kg pairs.
func parseItems(raw []string) ([]models.RationItem, error) {
	out := make([]models.RationItem, 0, len(raw))
	for _, r := range raw {
		id, amount, ok := strings.Cut(r, "=")
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("invalid item %q, want feed_id=kg", r)
		}
		kg, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %w", r, err)
		}
		if !finite(kg) {
			return nil, fmt.Errorf("invalid amount in %q: must be a finite number", r)
		}
		out = append(out, models.RationItem{FeedID: strings.TrimSpace(id), AmountKg: kg})
	}
	return out, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func printEvaluation(w io.Writer, e rations.Evaluation) error {
	breed := e.BreedName
	if !e.BreedResolved {
		breed += " (fallback)"
	}
	fmt.Fprintf(w, "Breed: %s\nScore: %d (%s)\n\n", breed, e.Score, e.Grade)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUTRIENT\tCURRENT\tREQUIRED\tPART")
	r, t, b := e.Requirements, e.Totals, e.Breakdown
	fmt.Fprintf(tw, "Dry matter (kg)\t%.2f\t%.2f\t%.0f\n", t.DryMatterKg, r.DryMatterIntakeKg, b.DryMatter)
	fmt.Fprintf(tw, "Energy (MJ)\t%.2f\t%.2f\t%.0f\n", t.EnergyMJ, r.EnergyMJ, b.Energy)
	fmt.Fprintf(tw, "Protein (g)\t%.1f\t%.1f\t%.0f\n", t.ProteinG, r.ProteinG, b.Protein)
	fmt.Fprintf(tw, "Calcium (g)\t%.1f\t%.1f\t%.0f\n", t.CalciumG, r.CalciumG, b.Calcium)
	fmt.Fprintf(tw, "Phosphorus (g)\t%.1f\t%.1f\t%.0f\n", t.PhosphorusG, r.PhosphorusG, b.Phosphorus)
	fmt.Fprintf(tw, "Magnesium (g)\t%.1f\t%.1f\t%.0f\n", t.MagnesiumG, r.MagnesiumG, b.Magnesium)
	fmt.Fprintf(tw, "Sodium (g)\t%.1f\t%.1f\t-\n", t.SodiumG, r.SodiumG)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nFresh weight: %.2f kg  Cost: %.2f\n", t.TotalFreshKg, t.Cost)
	for _, warn := range e.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
	return nil
}

func newBreedsCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "breeds",
		Short: "List breeds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			breeds := a.holder.Current().Breeds()
			if category != "" {
				c, err := models.ParseCategory(category)
				if err != nil {
					return err
				}
				breeds = a.holder.Current().BreedsFor(c)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tME (MJ/kg)\tCP (g/kg)")
			for _, b := range breeds {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%.2f\n", b.ID, b.Name, b.Category, b.MaintenanceEnergy, b.MaintenanceProtein)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only breeds of this category")
	return cmd
}

func newFeedsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "feeds",
		Short: "List feeds with their analysis and price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tGROUP\tDM%\tME\tCP%\tPRICE")
			for _, f := range a.holder.Current().Feeds() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.2f\n",
					f.ID, f.Name, f.Group, f.DryMatterPercent, f.MetabolizableEnergy, f.CrudeProtein, f.PricePerKg)
			}
			return tw.Flush()
		},
	}
}

func newRecordsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage saved rations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved rations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			records, err := svc.History(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tBREED\tWEIGHT\tSCORE\tREPORTS")
			for _, r := range records {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%d\t%d\n",
					r.ID, r.FormattedDate, r.Profile.Category, r.Profile.BreedID, r.Profile.LiveWeightKg, r.QualityScore, len(r.AdvisoryReports))
			}
			return tw.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved ration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			return svc.Delete(cmd.Context(), id)
		},
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write every saved ration as a JSON array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			data, err := svc.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(out, data, 0o600)
		},
	}
	export.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all saved rations with an exported JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			n, err := svc.Import(cmd.Context(), data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d records\n", n)
			return nil
		},
	}

	var days int
	summary := &cobra.Command{
		Use:   "summary",
		Short: "Summarize the rations saved in the last days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.service(cmd.Context()); err != nil {
				return err
			}
			reports := reporting.NewService(a.store, a.cfg.Server.Location(), logger.Named(a.logger, "svc.reporting"))
			sum, err := reports.LastDays(cmd.Context(), time.Now(), days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reporting.Format(sum))
			return nil
		},
	}
	summary.Flags().IntVar(&days, "days", 7, "length of the period in days")

	cmd.AddCommand(list, del, export, imp, summary)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
