// Package cli implements newsctl, a terminal front end for the news API
// built on the admin and browse packages.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Faisalali0159/besofy/internal/browse"
	"github.com/Faisalali0159/besofy/internal/client"
)

// settings are the global flags, defaulted from the environment.
type settings struct {
	apiURL      string
	token       string
	timeout     time.Duration
	placeholder string
}

func (s *settings) client() *client.Client {
	return client.New(s.apiURL, client.WithToken(s.token), client.WithTimeout(s.timeout))
}

// Execute runs newsctl with the process arguments.
func Execute() error {
	_ = godotenv.Load()
	return NewRootCommand().ExecuteContext(context.Background())
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:           "newsctl",
		Short:         "Manage and browse news articles",
		Long:          `newsctl lists, creates, edits and deletes news articles and shows the public category view.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.apiURL, "api-url", envOr("NEWS_API_URL", "http://localhost:8080"), "news API base URL")
	flags.StringVar(&s.token, "token", os.Getenv("NEWS_API_TOKEN"), "admin bearer token")
	flags.DurationVar(&s.timeout, "timeout", envDuration("NEWS_API_TIMEOUT", client.DefaultTimeout), "request timeout")
	flags.StringVar(&s.placeholder, "placeholder", envOr("NEWS_PLACEHOLDER_IMAGE", browse.DefaultPlaceholder), "image shown for articles without one")

	root.AddCommand(
		newListCommand(s),
		newBrowseCommand(s),
		newCreateCommand(s),
		newEditCommand(s),
		newDeleteCommand(s),
		newTokenCommand(),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
