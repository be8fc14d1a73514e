package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goran-ethernal/FactoryScout/internal/checkpoint"
	"github.com/goran-ethernal/FactoryScout/internal/common"
	"github.com/goran-ethernal/FactoryScout/internal/config"
	"github.com/goran-ethernal/FactoryScout/internal/discovery"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	"github.com/goran-ethernal/FactoryScout/internal/metrics"
	"github.com/goran-ethernal/FactoryScout/internal/registry"
	"github.com/goran-ethernal/FactoryScout/internal/rpc"
	"github.com/goran-ethernal/FactoryScout/internal/types"
	"github.com/goran-ethernal/FactoryScout/pkg/api"
	pkgconfig "github.com/goran-ethernal/FactoryScout/pkg/config"
	pkgdiscovery "github.com/goran-ethernal/FactoryScout/pkg/discovery"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	version = "1.0.0"
	banner  = `
╔═══════════════════════════════════════════╗
║           FactoryScout v%s             ║
║      AMM Factory Discovery Engine         ║
╚═══════════════════════════════════════════╝
`
)

var (
	configPath string
	follow     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "factoryscout",
	Short: "FactoryScout - AMM factory discovery",
	Long: `FactoryScout scans factory creation logs on an EVM chain, counts the AMMs each
factory created and reports the factories above a configurable threshold.
Progress is checkpointed after every block range, so interrupted runs resume
where they stopped.`,
	Version: version,
	RunE:    runDiscovery,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.Flags().BoolVarP(&follow, "follow", "f", false, "keep discovering new blocks every poll_interval")

	rootCmd.AddCommand(kindsCmd, exportCmd, schemaCmd)
}

func runDiscovery(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), banner, version)

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	kinds, err := factory.ParseKinds(cfg.Discovery.Factories)
	if err != nil {
		return err
	}
	finality, err := types.ParseBlockFinality(cfg.Discovery.Finality)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewComponentLoggerFromConfig(common.ComponentDiscovery, cfg.Logging)
	rpcLog := logger.NewComponentLoggerFromConfig(common.ComponentRPC, cfg.Logging)

	log.Infow("connecting to Ethereum node", "rpc_url", cfg.Discovery.RPCURL)
	client, err := rpc.NewClient(ctx, cfg.Discovery.RPCURL, cfg.Discovery.Retry, rpcLog)
	if err != nil {
		return fmt.Errorf("failed to create RPC client: %w", err)
	}
	defer client.Close()

	var reg *registry.Registry
	if cfg.Registry != nil {
		reg, err = registry.New(*cfg.Registry, logger.NewComponentLoggerFromConfig(common.ComponentRegistry, cfg.Logging))
		if err != nil {
			return fmt.Errorf("failed to open registry: %w", err)
		}
		defer reg.Close()
	}

	source := discovery.NewRPCSource(client, finality, cfg.Discovery.FinalizedLag, rpcLog)
	discoverer := discovery.New(source, log)
	params := pkgdiscovery.Params{
		Kinds:          kinds,
		AMMThreshold:   cfg.Discovery.AMMThreshold,
		ChunkSize:      cfg.Discovery.ChunkSize,
		CheckpointPath: cfg.Discovery.CheckpointPath,
		StartBlock:     cfg.Discovery.StartBlock,
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, logger.NewComponentLoggerFromConfig(common.ComponentMetrics, cfg.Logging))
		g.Go(func() error { return metricsServer.Start(gctx) })
	}

	if cfg.API != nil && cfg.API.Enabled {
		apiServer := api.NewServer(cfg.API, cfg.Discovery.CheckpointPath,
			logger.NewComponentLoggerFromConfig(common.ComponentAPI, cfg.Logging))
		g.Go(func() error { return apiServer.Start(gctx) })
	}

	report := func(records []factory.Record) error {
		metrics.RunFinished(nil, len(records))
		printFactories(cmd.OutOrStdout(), records, cfg.Discovery.AMMThreshold)

		if reg == nil {
			return nil
		}
		return syncRegistry(gctx, reg, cfg.Discovery.CheckpointPath, log)
	}

	g.Go(func() error {
		metrics.ComponentHealthSet(common.ComponentDiscovery, true)

		var err error
		if follow {
			log.Infow("following chain head", "poll_interval", cfg.Discovery.PollInterval.Duration)
			err = discoverer.Follow(gctx, params, cfg.Discovery.PollInterval.Duration, report)
		} else {
			// A single run stops the servers once it is done
			defer cancelRun()

			var records []factory.Record
			records, err = discoverer.Discover(gctx, params)
			if err == nil {
				err = report(records)
			}
		}

		if err != nil && !errors.Is(err, context.Canceled) {
			metrics.RunFinished(err, 0)
			metrics.ComponentHealthSet(common.ComponentDiscovery, false)
			metrics.ErrorsInc(common.ComponentDiscovery, "error")
			return fmt.Errorf("discovery failed: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("FactoryScout stopped")
	return nil
}

// syncRegistry copies the saved checkpoint, including factories below the threshold, into reg.
func syncRegistry(ctx context.Context, reg *registry.Registry, checkpointPath string, log *logger.Logger) error {
	store, err := checkpoint.Load(checkpointPath, log.WithComponent(common.ComponentCheckpoint))
	if err != nil {
		return err
	}

	if err := reg.Sync(ctx, store.Factories(), store.LastBlock()); err != nil {
		return fmt.Errorf("failed to sync registry: %w", err)
	}

	return nil
}

func printFactories(w io.Writer, records []factory.Record, threshold uint64) {
	fmt.Fprintf(w, "Found %d factories with at least %d AMMs:\n", len(records), threshold)
	for _, rec := range records {
		fmt.Fprintf(w, "  - %s %s (created at block %d", rec.Kind, rec.Address.Hex(), rec.CreationBlock)
		if fee := rec.Fee(); fee != 0 {
			fmt.Fprintf(w, ", fee %d", fee)
		}
		fmt.Fprintln(w, ")")
	}
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List supported factory kinds",
	Long:  `List the factory kinds that can be used in discovery.factories, with the event each one is discovered by.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Supported factory kinds:")
		for _, kind := range factory.AllKinds() {
			fmt.Fprintf(out, "  - %s\n      event:     %s\n      signature: %s\n",
				kind, kind.EventName(), kind.DiscoverySignature().Hex())
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Copy the discovery checkpoint into the registry database",
	Long: `Export every factory in the checkpoint, with its AMM count, into the SQLite
registry configured under "registry". The registry is replaced as a whole.
The exported factories at or above discovery.amm_threshold are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return exportCheckpoint(cmd.Context(), cmd.OutOrStdout(), cfg)
	},
}

func exportCheckpoint(ctx context.Context, out io.Writer, cfg *pkgconfig.Config) error {
	if cfg.Registry == nil {
		return errors.New("registry is not configured")
	}

	log := logger.NewComponentLoggerFromConfig(common.ComponentRegistry, cfg.Logging)

	reg, err := registry.New(*cfg.Registry, log)
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	defer reg.Close()

	if err := syncRegistry(ctx, reg, cfg.Discovery.CheckpointPath, log); err != nil {
		return err
	}

	lastBlock, _, err := reg.LastBlock(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Exported %s to %s (last block %d)\n", cfg.Discovery.CheckpointPath, cfg.Registry.Path, lastBlock)

	rows, err := reg.List(ctx, cfg.Discovery.AMMThreshold, "")
	if err != nil {
		return err
	}

	records := make([]factory.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.Record()
		if err != nil {
			return fmt.Errorf("invalid registry row %s: %w", row.Address.Hex(), err)
		}
		records = append(records, rec)
	}

	printFactories(out, records, cfg.Discovery.AMMThreshold)
	return nil
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.SchemaJSON()
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}
