package cli

import (
	"fmt"
	"io"
	"strings"

	"futarinavi/internal/models"
	"futarinavi/internal/simulator"

	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	var in models.SimulatorInput
	var income string

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Estimate the benefits a couple can receive",
		Example: `  navi simulate --age-a 28 --age-b 29 --income under-300
  navi simulate --age-a 35 --age-b 33 --income 300-500 --date 2026-04-01 --share`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.HouseholdIncome = models.IncomeRange(income)
			if err := checkInput(in); err != nil {
				return err
			}
			share, _ := cmd.Flags().GetBool("share")
			return renderSimulation(cmd.OutOrStdout(), in, simulator.Run(in), share)
		},
	}

	cmd.Flags().IntVar(&in.PartnerAAge, "age-a", 0, "age of partner A")
	cmd.Flags().IntVar(&in.PartnerBAge, "age-b", 0, "age of partner B")
	cmd.Flags().StringVar(&income, "income", "", "household income band: "+incomeBands())
	cmd.Flags().StringVar(&in.MarriageDate, "date", "", "marriage date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.District, "district", "", "municipality, e.g. 港区")
	cmd.Flags().BoolVar(&in.IsMoving, "moving", false, "the couple is moving")
	cmd.Flags().BoolVar(&in.NameChanged, "name-changed", true, "one partner changes surname")
	cmd.Flags().Bool("share", false, "also print a share token for this input")
	_ = cmd.MarkFlagRequired("age-a")
	_ = cmd.MarkFlagRequired("age-b")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func incomeBands() string {
	bands := make([]string, len(models.IncomeRanges))
	for i, r := range models.IncomeRanges {
		bands[i] = string(r)
	}
	return strings.Join(bands, ", ")
}

func checkInput(in models.SimulatorInput) error {
	for _, age := range []int{in.PartnerAAge, in.PartnerBAge} {
		if age < 18 || age > 120 {
			return fmt.Errorf("ages must be between 18 and 120, got %d", age)
		}
	}
	if !in.HouseholdIncome.Valid() {
		return fmt.Errorf("--income: expected one of %s", incomeBands())
	}
	if in.MarriageDate != "" {
		if _, err := parseDay("date", in.MarriageDate); err != nil {
			return err
		}
	}
	return nil
}

func renderSimulation(w io.Writer, in models.SimulatorInput, res models.SimulatorResult, share bool) error {
	fmt.Fprintln(w, titleStyle.Render("もらえるお金シミュレーション"))
	fmt.Fprintf(w, "年間の受取見込み %s\n", amountStyle.Render(simulator.FormatYen(res.TotalAnnualEstimate)))

	financial, service := simulator.Split(res)
	if len(financial) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("お金がもらえる制度"))
		for _, ep := range financial {
			fmt.Fprintf(w, "  %s  %s\n", ep.Program.Name, amountStyle.Render(simulator.FormatYen(ep.EstimatedAmount)))
			for _, a := range ep.ActionItems {
				fmt.Fprintln(w, "    - "+a)
			}
		}
	}
	if len(service) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("使える制度・サービス"))
		for _, ep := range service {
			fmt.Fprintf(w, "  %s %s\n", ep.Program.Name, dimStyle.Render(simulator.CategoryLabel(ep.Program.Category)))
		}
	}

	if share {
		token, err := simulator.EncodeShareToken(in)
		if err != nil {
			return fmt.Errorf("encoding share token: %w", err)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "share: "+token)
	}
	return nil
}
