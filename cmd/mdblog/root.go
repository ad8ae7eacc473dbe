package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/mdblog"
)

// flagKeys maps command flags onto configuration keys.
var flagKeys = map[string]string{
	"addr":  "addr",
	"posts": "posts_dir",
	"watch": "watch",
	"env":   "environment",
}

type cli struct {
	cfgFile string
	cfg     mdblog.SiteConfig
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "mdblog",
		Short: "mdblog - a blog served from a directory of markdown files",
		Long: `mdblog reads every markdown file in a posts directory once at startup
and serves them as a blog: a post list, one page per post, RSS and a sitemap.

The first "# Heading" of a file is the post title; the file name without
".md" is its slug.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initializeConfig(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		c.newServeCmd(),
		c.newListCmd(),
		c.newShowCmd(),
		c.newNewCmd(),
		newVersionCmd(),
	)
	return root
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", ":3000")
	v.SetDefault("posts_dir", "posts")
	v.SetDefault("static_dir", "public")
	v.SetDefault("environment", mdblog.EnvDevelopment)
	v.SetDefault("google_fonts", mdblog.DefaultGoogleFonts)
	v.SetDefault("google_analytics_id", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("analytics_enabled", false)
	v.SetDefault("analytics_database_path", "data/analytics.db")
	v.SetDefault("analytics_retention_days", 365)
	v.SetDefault("analytics_dedupe", "30m")
	v.SetDefault("watch", false)
	v.SetDefault("watch_debounce", "300ms")
}

func (c *cli) initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	setDefaults(v)

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MDBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("google_analytics_id", "MDBLOG_GOOGLE_ANALYTICS_ID", "GOOGLE_ID"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		cmd.PrintErrln("Using config file:", v.ConfigFileUsed())
	}

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if err := v.Unmarshal(&c.cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mdblog version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("mdblog %s\n", version)
		},
	}
}
