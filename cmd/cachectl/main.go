package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"booking-platform/internal/cache"
	"booking-platform/internal/config"
	"booking-platform/pkg/logger"
)

var (
	redisHost string
	redisPort int
	prefix    string
	timeout   time.Duration
	verbose   bool
)

func main() {
	_ = godotenv.Load()
	def := config.LoadRedisConfig()

	rootCmd := &cobra.Command{
		Use:   "cachectl",
		Short: "Inspect and invalidate the booking platform cache",
		Long:  "Operator tool for the namespaced Redis cache used by the booking platform",
	}

	rootCmd.PersistentFlags().StringVar(&redisHost, "redis-host", def.Host, "Redis host")
	rootCmd.PersistentFlags().IntVar(&redisPort, "redis-port", def.Port, "Redis port")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", def.KeyPrefix, "Key namespace")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Command timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every cache operation")

	rootCmd.AddCommand(
		statusCmd(),
		getCmd(),
		delCmd(),
		invalidateCmd(),
		expireCmd(),
		flushCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openCache connects eagerly so a dead store is reported instead of
// silently skipped
func openCache(ctx context.Context) (*cache.RedisCache, error) {
	cfg := config.LoadRedisConfig()
	cfg.Host = redisHost
	cfg.Port = redisPort
	cfg.KeyPrefix = prefix
	cfg.MaxRetriesPerRequest = 0
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.NewLogger()
	if !verbose {
		log.SetLevel("error")
	}

	opts, err := cache.OptionsFromConfig(cfg, log, nil)
	if err != nil {
		return nil, err
	}
	c, err := cache.NewRedisCache(opts)
	if err != nil {
		return nil, err
	}

	c.Exists(ctx, "")
	if !c.IsConnected() {
		_ = c.Close()
		return nil, fmt.Errorf("cache at %s is unreachable (state %s)", cfg.Addr(), c.State())
	}
	return c, nil
}

func withCache(fn func(ctx context.Context, c *cache.RedisCache) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		c, err := openCache(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		return fn(ctx, c)
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the cache connection state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			c, err := openCache(ctx)
			if err != nil {
				fmt.Printf("state:     disconnected\nerror:     %v\n", err)
				return nil
			}
			defer c.Close()

			fmt.Printf("state:     %s\n", c.State())
			fmt.Printf("connected: %t\n", c.IsConnected())
			fmt.Printf("prefix:    %q\n", c.Prefix())
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print the decoded value stored under a logical key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(func(ctx context.Context, c *cache.RedisCache) error {
				var value any
				var found bool
				if field != "" {
					found = c.GetHash(ctx, args[0], field, &value)
				} else {
					found = c.Get(ctx, args[0], &value)
				}
				if !found {
					return fmt.Errorf("key not found: %s", args[0])
				}

				out, err := json.MarshalIndent(value, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			})(cmd, args)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Read a single hash field")
	return cmd
}

func delCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "del <key>...",
		Short: "Delete logical keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(func(ctx context.Context, c *cache.RedisCache) error {
				for _, key := range args {
					fmt.Printf("%s\t%t\n", key, c.Delete(ctx, key))
				}
				return nil
			})(cmd, args)
		},
	}
}

func invalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "invalidate <pattern>",
		Short:   "Delete every key in the namespace matching a glob pattern",
		Example: "  cachectl invalidate 'user:42:*'\n  cachectl invalidate 'blog:*'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(func(ctx context.Context, c *cache.RedisCache) error {
				removed := c.InvalidatePattern(ctx, args[0])
				fmt.Printf("Removed %d keys matching %q\n", removed, args[0])
				return nil
			})(cmd, args)
		},
	}
}

func expireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire <key> <ttl>",
		Short: "Reset the time-to-live of a key, e.g. expire vehicle:42 5m",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := time.ParseDuration(args[1])
			if err != nil || ttl <= 0 {
				return fmt.Errorf("invalid ttl: %s", args[1])
			}
			return withCache(func(ctx context.Context, c *cache.RedisCache) error {
				if !c.Expire(ctx, args[0], ttl) {
					return fmt.Errorf("key not found: %s", args[0])
				}
				fmt.Printf("%s now expires in %s\n", args[0], ttl)
				return nil
			})(cmd, args)
		},
	}
}

func flushCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Wipe the entire Redis database, all namespaces included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to flush without --yes")
			}
			return withCache(func(ctx context.Context, c *cache.RedisCache) error {
				if !c.FlushAll(ctx) {
					return fmt.Errorf("flush failed")
				}
				fmt.Println("Cache flushed")
				return nil
			})(cmd, args)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the flush")
	return cmd
}
