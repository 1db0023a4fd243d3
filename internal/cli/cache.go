package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikematt33/ghscope/internal/cache"
)

var flagClearStats bool

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache",
	Long: `Manage the disk-based cache for GitHub API responses.
The cache stores raw query results locally to reduce API rate limit usage
and to let reports rerun offline. Cached data expires after 1 hour by
default (configurable via cache_ttl_minutes).`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [owner/repo]",
	Short: "Clear cached API responses",
	Long: `Remove cached GitHub API responses from disk, either for one repository
or everything. This forces fresh API calls on the next run.`,
	Example: `  ghscope cache clear
  ghscope cache clear golang/go
  ghscope cache clear --stats`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCacheClear,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Run:   runCacheStats,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)

	cacheClearCmd.Flags().BoolVar(&flagClearStats, "stats", false, "Show statistics before clearing")
}

func openCache() *cache.Cache {
	path, err := cache.DefaultPath()
	if err != nil {
		fmt.Printf("Error getting cache path: %v\n", err)
		os.Exit(1)
	}
	c, err := cache.Open(path, 0)
	if err != nil {
		fmt.Printf("Error opening cache: %v\n", err)
		os.Exit(1)
	}
	return c
}

func runCacheClear(cmd *cobra.Command, args []string) {
	c := openCache()
	defer func() { _ = c.Close() }()

	if flagClearStats {
		count, size, err := c.Stats()
		if err != nil {
			fmt.Printf("Error getting cache stats: %v\n", err)
		} else {
			fmt.Printf("Cache statistics before clearing:\n")
			fmt.Printf("  Entries: %d\n", count)
			fmt.Printf("  Size: %.2f MB\n", float64(size)/(1024*1024))
		}
	}

	repo := ""
	if len(args) == 1 {
		repo = args[0]
	}
	if err := c.Clear(repo); err != nil {
		fmt.Printf("Error clearing cache: %v\n", err)
		os.Exit(1)
	}

	if repo != "" {
		fmt.Printf("✓ Cache cleared for %s\n", repo)
	} else {
		fmt.Println("✓ Cache cleared successfully")
	}
}

func runCacheStats(cmd *cobra.Command, args []string) {
	path, err := cache.DefaultPath()
	if err != nil {
		fmt.Printf("Error getting cache path: %v\n", err)
		os.Exit(1)
	}

	c := openCache()
	defer func() { _ = c.Close() }()

	count, size, err := c.Stats()
	if err != nil {
		fmt.Printf("Error getting cache stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cache statistics:\n")
	fmt.Printf("  Location: %s\n", path)
	fmt.Printf("  Entries: %d\n", count)
	fmt.Printf("  Size: %.2f MB\n", float64(size)/(1024*1024))
}
