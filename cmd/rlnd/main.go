// ABOUTME: Entry point for the rlnd node daemon
// ABOUTME: Wires config, store, legacy migration, and file mirror together at startup

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/codec"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/config"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/legacy"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/mirror"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/store"
	"github.com/UTEXO-Protocol/rgb-lightning-node-old/internal/vault"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
       _           _
  _ __| |_ __   __| |
 | '__| | '_ \ / _' |
 | |  | | | | | (_| |
 |_|  |_|_| |_|\__,_|
`

// getConfigPath returns the path to the node config file.
// Priority: RLN_CONFIG env var > ./rlnd.yaml
func getConfigPath() string {
	if envPath := os.Getenv("RLN_CONFIG"); envPath != "" {
		return envPath
	}
	return "rlnd.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: rlnd <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve        Start the node")
		fmt.Println("  init-wallet  Create or restore an encrypted wallet seed")
		fmt.Println("  unlock       Verify the wallet password against the stored seed")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init-wallet":
		err = runInitWallet(ctx)
	case "unlock":
		err = runUnlock(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.Database.Path, store.PoolConfig{
		MaxConns:    cfg.Database.MaxConns,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Storage:  %s\n", cfg.StorageDir)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Println()

	logger.Info("starting rlnd", "config", configPath, "storage_dir", cfg.StorageDir)

	// No degraded mode without the store: open/schema failure is fatal.
	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	// Pull any pre-store flat-file state into the database, then publish
	// current store state back out for the file-only RGB library.
	if err := legacy.NewMigrator(st, cfg.StorageDir).Run(ctx); err != nil {
		logger.Warn("legacy migration incomplete", "error", err)
	}
	if err := mirror.Sync(ctx, st, cfg.StorageDir); err != nil {
		logger.Warn("config mirror sync incomplete", "error", err)
	}

	if err := preloadEngineState(ctx, st, cfg, logger); err != nil {
		return err
	}

	logger.Info("node ready")
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// preloadEngineState loads the protocol engine's persisted records. Every
// file read degrades to an empty default, so a wiped data directory still
// starts cleanly.
func preloadEngineState(ctx context.Context, st *store.SQLiteStore, cfg *config.Config, logger *slog.Logger) error {
	network, _, err := st.LoadRGBConfig(ctx, store.ConfigBitcoinNetwork)
	if err != nil {
		return fmt.Errorf("loading bitcoin network: %w", err)
	}

	dir := cfg.StorageDir
	inbound := codec.ReadOrDefault(filepath.Join(dir, codec.InboundPaymentsFname), codec.NewPaymentsFile)
	outbound := codec.ReadOrDefault(filepath.Join(dir, codec.OutboundPaymentsFname), codec.NewPaymentsFile)
	makerSwaps := codec.ReadOrDefault(filepath.Join(dir, codec.MakerSwapsFname), codec.NewSwapsFile)
	takerSwaps := codec.ReadOrDefault(filepath.Join(dir, codec.TakerSwapsFname), codec.NewSwapsFile)
	spenderTxs := codec.ReadOrDefault(filepath.Join(dir, codec.SpenderTxsFname), codec.NewSpenderTxsFile)
	graph := codec.ReadOrDefault(filepath.Join(dir, codec.NetworkGraphFname), func() codec.NetworkGraphFile {
		return codec.NewNetworkGraphFile(network)
	})
	scorer := codec.ReadOrDefault(filepath.Join(dir, codec.ScorerFname), codec.NewScorerFile)

	channelIDs, err := st.LoadChannelIDMappings(ctx)
	if err != nil {
		return fmt.Errorf("loading channel id mappings: %w", err)
	}
	peers, err := st.LoadChannelPeers(ctx)
	if err != nil {
		return fmt.Errorf("loading channel peers: %w", err)
	}
	revoked, err := st.LoadRevokedTokens(ctx)
	if err != nil {
		return fmt.Errorf("loading revoked tokens: %w", err)
	}

	logger.Info("engine state loaded",
		"inbound_payments", len(inbound.Payments),
		"outbound_payments", len(outbound.Payments),
		"maker_swaps", len(makerSwaps.Swaps),
		"taker_swaps", len(takerSwaps.Swaps),
		"spender_txes", len(spenderTxs.Txes),
		"graph_channels", len(graph.Channels),
		"scored_channels", len(scorer.Liquidities),
		"channel_id_mappings", len(channelIDs),
		"channel_peers", len(peers),
		"revoked_tokens", len(revoked),
	)
	return nil
}

func runInitWallet(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(setupLogger(cfg.Logging))

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	password, err := promptLine("Wallet password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	phrase, err := promptLine("Seed phrase (leave empty to generate a new wallet): ")
	if err != nil {
		return err
	}

	mnemonic, err := initWallet(ctx, st, password, phrase)
	if err != nil {
		return err
	}

	if phrase != "" {
		color.New(color.FgGreen).Println("Wallet restored from seed phrase")
		return nil
	}
	fmt.Println()
	fmt.Println("Write down your seed phrase. It will not be shown again:")
	fmt.Println()
	color.New(color.FgYellow).Printf("    %s\n\n", mnemonic)
	return nil
}

// initWallet encrypts and stores a wallet seed. An empty phrase generates a
// fresh 24-word mnemonic; a non-empty one is validated and stored as-is, so
// an existing wallet can be restored from its seed words.
func initWallet(ctx context.Context, st *store.SQLiteStore, password, phrase string) (string, error) {
	if err := st.CheckAlreadyInitialized(ctx); err != nil {
		return "", err
	}

	var mnemonic string
	var err error
	if phrase == "" {
		mnemonic, err = vault.GenerateMnemonic()
		if err != nil {
			return "", fmt.Errorf("generating mnemonic: %w", err)
		}
	} else {
		mnemonic, err = vault.ParseMnemonic(phrase)
		if err != nil {
			return "", err
		}
	}

	encrypted, err := vault.Encrypt(password, mnemonic)
	if err != nil {
		return "", fmt.Errorf("encrypting mnemonic: %w", err)
	}
	if err := st.SaveMnemonic(ctx, encrypted); err != nil {
		return "", err
	}
	return mnemonic, nil
}

func runUnlock(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(setupLogger(cfg.Logging))

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	password, err := promptLine("Wallet password: ")
	if err != nil {
		return err
	}

	migrated, err := unlockWallet(ctx, st, cfg.StorageDir, password)
	if err != nil {
		return err
	}
	if migrated {
		color.New(color.FgGreen).Println("Wallet unlocked (migrated from legacy file)")
		return nil
	}
	color.New(color.FgGreen).Println("Wallet unlocked")
	return nil
}

// unlockWallet checks the password against the stored seed, falling back to
// the legacy mnemonic file when the store holds none. It reports whether the
// seed was migrated from the legacy file along the way. A wrong password is
// reported identically on both paths.
func unlockWallet(ctx context.Context, st *store.SQLiteStore, storageDir, password string) (bool, error) {
	encrypted, err := st.LoadMnemonic(ctx)
	if errors.Is(err, store.ErrNotInitialized) {
		// The seed may still live in a pre-store backup file.
		_, merr := legacy.NewMigrator(st, storageDir).MigrateMnemonic(ctx, password)
		if errors.Is(merr, vault.ErrWrongPassword) {
			return false, fmt.Errorf("incorrect password")
		}
		if merr != nil {
			return false, merr
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	phrase, err := vault.Decrypt(password, encrypted)
	if errors.Is(err, vault.ErrWrongPassword) {
		return false, fmt.Errorf("incorrect password")
	}
	if err != nil {
		return false, err
	}

	if _, err := vault.ParseMnemonic(phrase); err != nil {
		// Decryption succeeded but the stored value is not a valid seed:
		// the store invariant is broken, not the user's password.
		return false, fmt.Errorf("stored seed failed validation: %w", err)
	}
	return false, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
