package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/skasiraj/pMuTT/thermdat"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func showCmd() *cobra.Command {
	var temps []float64
	c := &cobra.Command{
		Use:   "show THERMDAT",
		Short: "Tabulate Cp/R, H/RT, S/R and G/RT of every species in a thermdat file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			species, _, err := thermdat.Read(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), Render(species, temps))
			return nil
		},
	}
	c.Flags().Float64SliceVarP(&temps, "temps", "t",
		[]float64{298.15, 500, 1000}, "temperatures to tabulate in K")
	return c
}

// Render lays out one card per species. Temperatures outside a species'
// fitted range are flagged.
func Render(species []thermdat.Species, temps []float64) string {
	cards := make([]string, 0, len(species))
	for _, sp := range species {
		var b strings.Builder
		fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("%s (%s)", sp.Name, sp.Phase)))
		fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf(
			"T range %.1f-%.1f K, T_mid %.1f K", sp.TLow, sp.THigh, sp.TMid)))
		fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf(
			"%10s %12s %12s %12s %12s", "T/K", "Cp/R", "H/RT", "S/R", "G/RT")))
		for i, T := range temps {
			row := fmt.Sprintf("%10.2f %12.5f %12.5f %12.5f %12.5f",
				T, sp.CpoR(T), sp.HoRT(T), sp.SoR(T), sp.GoRT(T))
			if !sp.InRange(T) {
				row = warnStyle.Render(row + " *")
			}
			b.WriteString(row)
			if i < len(temps)-1 {
				b.WriteByte('\n')
			}
		}
		cards = append(cards, cardStyle.Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
