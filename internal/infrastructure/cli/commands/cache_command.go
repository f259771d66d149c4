package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dlwhyte/agentfoundry/internal/app"
	"github.com/dlwhyte/agentfoundry/internal/domain"
	"github.com/dlwhyte/agentfoundry/internal/infrastructure/cli/helpers"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the response cache",
	}

	cacheCmd.AddCommand(
		newCacheListCommand(container),
		newCacheClearCommand(container),
		newCacheSizeCommand(container),
		newCacheStatsCommand(container),
		newCacheConfigCommand(container),
	)

	return cacheCmd
}

// newCacheListCommand creates the 'cache list' subcommand
func newCacheListCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCacheEntries(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheClearCommand creates the 'cache clear' subcommand
func newCacheClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearCache(container)
		},
	}
}

// newCacheSizeCommand creates the 'cache size' subcommand
func newCacheSizeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show cache size on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheSize(cmd.OutOrStdout(), container)
		},
	}
}

// newCacheStatsCommand creates the 'cache stats' subcommand
func newCacheStatsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache settings and per-model counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCacheStats(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

// newCacheConfigCommand creates the 'cache config' subcommand
func newCacheConfigCommand(container *app.Container) *cobra.Command {
	var ttl string
	var maxEntries int

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Update cache TTL/max entries (applies on next run)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateCacheConfiguration(cmd.Context(), container, ttl, maxEntries)
		},
	}

	cmd.Flags().StringVar(&ttl, "ttl", "", "Cache TTL duration (e.g. 30m, 2h)")
	cmd.Flags().IntVar(&maxEntries, "max", 0, "Max cache entries")
	return cmd
}

// listCacheEntries lists all cache entries
func listCacheEntries(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	entries, err := container.CacheStore.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	for _, entry := range entries {
		fmt.Fprintf(out, "%s | %s | %s\n",
			entry.Key,
			entry.Model,
			entry.CreatedAt.Format(domain.TimestampFormat))
	}

	return nil
}

// clearCache clears the cache directory
func clearCache(container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	if err := container.CacheStore.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}

// showCacheSize displays the cache directory size
func showCacheSize(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	dir := container.CacheStore.Dir()
	totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}

	fmt.Fprintf(out, "Cache directory: %s\nSize: %s\n", dir, humanize.Bytes(uint64(totalSize)))
	return nil
}

// showCacheStats displays cache settings and per-model statistics
func showCacheStats(ctx context.Context, out io.Writer, container *app.Container) error {
	cache := container.CacheStore
	if cache == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	entries, err := cache.Entries()
	if err != nil {
		return fmt.Errorf("failed to retrieve cache entries: %w", err)
	}

	fmt.Fprintf(out, "Cache TTL: %s\nMax entries: %d\nCurrent entries: %d\n",
		cfg.Cache.TTL,
		cfg.GetCacheMaxEntries(),
		len(entries))

	modelCounts := make(map[string]int)
	for _, entry := range entries {
		modelCounts[entry.Model]++
	}

	if len(modelCounts) == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	fmt.Fprintln(out, "Entries per model:")
	for _, stat := range helpers.TopCounts(modelCounts, 0) {
		fmt.Fprintf(out, "  %s: %d\n", stat.Name, stat.Count)
	}

	return nil
}

// updateCacheConfiguration updates cache TTL and/or max entries
func updateCacheConfiguration(ctx context.Context, container *app.Container, ttl string, maxEntries int) error {
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if ttl != "" {
		if _, err := time.ParseDuration(ttl); err != nil {
			return fmt.Errorf("invalid ttl: %w", err)
		}
		cfg.Cache.TTL = ttl
	}

	if maxEntries > 0 {
		cfg.Cache.MaxEntries = maxEntries
	}

	return helpers.SaveConfigWithValidation(container, cfg)
}

// calculateDirectorySize calculates the total size of a directory
func calculateDirectorySize(dirPath string) (int64, error) {
	var totalSize int64

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip files that can't be accessed
		}

		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		totalSize += info.Size()
		return nil
	})

	if err != nil {
		return 0, err
	}

	return totalSize, nil
}
