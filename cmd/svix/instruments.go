package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/etf-svix/internal/config"
	"github.com/dgnsrekt/etf-svix/internal/data"
)

func instrumentsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "instruments",
		Short: "List supported ETFs, or the chains stored for a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			defer w.Flush()

			if date != "" {
				if _, err := parseDate(date); err != nil {
					return err
				}
				codes, err := data.NewCSVStore(cfg.Output.Directory, logger).Instruments(date)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "CODE\tNAME\n")
				for _, code := range codes {
					name := "?"
					if inst, ok := config.LookupInstrument(code); ok {
						name = inst.Name
					}
					fmt.Fprintf(w, "%s\t%s\n", code, name)
				}
				return nil
			}

			configured := make(map[string]bool)
			for _, code := range effectiveInstruments(cfg.Instruments, nil) {
				configured[code] = true
			}

			codes := make([]string, 0, len(config.ValidInstruments))
			for code := range config.ValidInstruments {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			fmt.Fprintf(w, "CODE\tNAME\tMARKET\tCONFIGURED\n")
			for _, code := range codes {
				inst := config.ValidInstruments[code]
				mark := ""
				if configured[code] {
					mark = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", inst.Code, inst.Name, inst.Market, mark)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "list chains stored for this date (YYYY-MM-DD)")

	return cmd
}
