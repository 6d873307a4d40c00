package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aleksandri0/mathpower/internal/calcset"
	"github.com/aleksandri0/mathpower/internal/config"
	"github.com/aleksandri0/mathpower/internal/difficulty"
	"github.com/aleksandri0/mathpower/internal/llm"
	"github.com/aleksandri0/mathpower/internal/problemgen"
	"github.com/aleksandri0/mathpower/internal/store"
)

// openStore opens the configured database.
func openStore(ctx context.Context, cfg config.Config) (*store.Store, error) {
	driver, err := cfg.Driver()
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("resolve database: %w", err)
	}
	st, err := store.Open(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// newGenerator builds the generator for source. LLM traffic is recorded in
// events when it is non-nil.
func newGenerator(ctx context.Context, cfg config.Config, source string, events store.EventRepo) (problemgen.Generator, error) {
	switch source {
	case config.SourceArithmetic:
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return problemgen.NewArithmetic(seed, problemgen.DefaultConfig()), nil
	case config.SourceLLM:
		provider, err := llm.NewProviderFromEnv(ctx, events)
		if err != nil {
			return nil, fmt.Errorf("LLM provider: %w", err)
		}
		return problemgen.New(provider, problemgen.DefaultConfig()), nil
	default:
		return nil, fmt.Errorf("source %q does not generate calculations", source)
	}
}

// loadSet produces the calculation set for a run. Generated LLM sets are
// stored as banks so they can be replayed without another request.
func loadSet(cmd *cobra.Command, cfg config.Config, st *store.Store) (calcset.Set, error) {
	ctx := cmd.Context()

	if cfg.Source == config.SourceBank {
		ref, _ := cmd.Flags().GetString("bank")
		b, err := resolveBank(ctx, st.BankRepo(), ref)
		if err != nil {
			return nil, err
		}
		return b.Set()
	}

	gen, err := newGenerator(ctx, cfg, cfg.Source, st.EventRepo())
	if err != nil {
		return nil, err
	}

	var prior calcset.Set
	if cfg.Source == config.SourceLLM {
		if prior, err = latestSet(ctx, st.BankRepo()); err != nil {
			return nil, err
		}
	}

	set, err := calcset.BuildAvoiding(ctx, gen, difficulty.All(), cfg.Count, prior)
	if err != nil {
		return nil, fmt.Errorf("generate calculations: %w", err)
	}

	if cfg.Source == config.SourceLLM {
		if err := saveBank(ctx, st.BankRepo(), calcset.NewBank("llm "+time.Now().Format(time.DateTime), calcset.SourceLLM, set)); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// resolveBank loads a bank by file path, stored ID, or the latest stored
// bank when ref is empty.
func resolveBank(ctx context.Context, repo store.BankRepo, ref string) (*calcset.Bank, error) {
	if ref != "" {
		if _, err := os.Stat(ref); err == nil {
			return readBankFile(ref)
		}
		rec, err := repo.Get(ctx, ref)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("bank %q is neither a file nor a stored bank", ref)
		}
		if err != nil {
			return nil, fmt.Errorf("load bank: %w", err)
		}
		return calcset.FromRecord(rec)
	}

	rec, err := repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load latest bank: %w", err)
	}
	if rec == nil {
		return nil, errors.New(`no bank stored yet; run "mathpower bank generate" or "mathpower bank import"`)
	}
	return calcset.FromRecord(rec)
}

func latestSet(ctx context.Context, repo store.BankRepo) (calcset.Set, error) {
	rec, err := repo.Latest(ctx)
	if err != nil || rec == nil {
		return nil, err
	}
	b, err := calcset.FromRecord(rec)
	if err != nil {
		return nil, err
	}
	return b.Set()
}

func readBankFile(path string) (*calcset.Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := calcset.Decode(f, calcset.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func saveBank(ctx context.Context, repo store.BankRepo, b *calcset.Bank) error {
	rec, err := calcset.ToRecord(b)
	if err != nil {
		return err
	}
	if err := repo.Save(ctx, rec); err != nil {
		return fmt.Errorf("save bank: %w", err)
	}
	return nil
}
