package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/config"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/store"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage stored calculation banks",
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a bank and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		source := cfg.Source
		if source == config.SourceBank {
			source = config.SourceArithmetic
		}
		name, _ := cmd.Flags().GetString("name")
		fresh, _ := cmd.Flags().GetBool("fresh")
		out, _ := cmd.Flags().GetString("out")

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := newGenerator(ctx, cfg, source, st.EventRepo())
		if err != nil {
			return err
		}

		var prior calcset.Set
		if fresh {
			if prior, err = latestSet(ctx, st.BankRepo()); err != nil {
				return err
			}
		}

		set, err := calcset.BuildAvoiding(ctx, gen, difficulty.All(), cfg.Count, prior)
		if err != nil {
			return fmt.Errorf("generate calculations: %w", err)
		}

		if name == "" {
			name = source + " bank"
		}
		b := calcset.NewBank(name, source, set)
		if err := saveBank(ctx, st.BankRepo(), b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored bank %s (%d calculations)\n", b.ID, b.Total())

		if out != "" {
			return writeBankFile(out, b, "")
		}
		return nil
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a JSON or YAML bank file and store it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		b, err := readBankFile(args[0])
		if err != nil {
			return err
		}
		if b.Source == "" {
			b.Source = calcset.SourceFile
		}

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := saveBank(ctx, st.BankRepo(), b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported bank %s %q (%d calculations)\n", b.ID, b.Name, b.Total())
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write a stored bank as JSON or YAML (default: latest bank to stdout)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		b, err := resolveBank(ctx, st.BankRepo(), ref)
		if err != nil {
			return err
		}

		if out != "" {
			return writeBankFile(out, b, format)
		}
		f, err := calcset.ParseFormat(defaultString(format, string(calcset.FormatYAML)))
		if err != nil {
			return err
		}
		return calcset.Encode(cmd.OutOrStdout(), b, f)
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored banks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.BankRepo().List(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list banks: %w", err)
		}
		w := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(w, "No banks stored.")
			return nil
		}

		fmt.Fprintf(w, "%-36s  %-19s  %-10s  %5s  %s\n", "ID", "Created", "Source", "Total", "Name")
		fmt.Fprintln(w, strings.Repeat("─", 96))
		for _, r := range recs {
			fmt.Fprintf(w, "%-36s  %-19s  %-10s  %5d  %s\n",
				r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Source, r.Total, r.Name)
		}
		return nil
	},
}

var bankShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print the calculations of a bank (default: latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		b, err := resolveBank(ctx, st.BankRepo(), ref)
		if err != nil {
			return err
		}
		set, err := b.Set()
		if err != nil {
			return err
		}
		printBank(cmd.OutOrStdout(), b, set)
		return nil
	},
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored bank",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.BankRepo().Delete(ctx, args[0]); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("bank %s not found", args[0])
			}
			return fmt.Errorf("delete bank: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted bank %s\n", args[0])
		return nil
	},
}

func printBank(w io.Writer, b *calcset.Bank, set calcset.Set) {
	fmt.Fprintf(w, "ID:       %s\n", b.ID)
	fmt.Fprintf(w, "Name:     %s\n", b.Name)
	fmt.Fprintf(w, "Source:   %s\n", defaultString(b.Source, "-"))
	fmt.Fprintf(w, "Created:  %s\n", b.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	for _, level := range set.Levels() {
		fmt.Fprintf(w, "\n%s (%d)\n", level.DisplayName(), len(set[level]))
		for i, c := range set[level] {
			fmt.Fprintf(w, "  %3d. %-24s = %s\n", i+1, c.Expression, c.Solution)
		}
	}
}

// writeBankFile encodes b to path. An empty format is taken from the file
// extension.
func writeBankFile(path string, b *calcset.Bank, format string) error {
	f := calcset.FormatFromPath(path)
	if format != "" {
		var err error
		if f, err = calcset.ParseFormat(format); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := calcset.Encode(file, b, f); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	bankGenerateCmd.Flags().String("name", "", "Bank name")
	bankGenerateCmd.Flags().Bool("fresh", false, "Avoid the expressions of the latest stored bank")
	bankGenerateCmd.Flags().String("out", "", "Also write the bank to this file (.json, .yaml or .yml)")

	bankExportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	bankExportCmd.Flags().StringP("format", "f", "", "json or yaml (default: from the file extension, yaml on stdout)")

	bankListCmd.Flags().IntP("limit", "n", 20, "Number of banks to show")

	bankCmd.AddCommand(bankGenerateCmd)
	bankCmd.AddCommand(bankImportCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankShowCmd)
	bankCmd.AddCommand(bankDeleteCmd)
}
