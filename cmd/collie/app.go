package main

import (
	"github.com/blackcoderx/collie/pkg/collection"
	"github.com/blackcoderx/collie/pkg/resource"
	"github.com/blackcoderx/collie/pkg/schema"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2/clientcredentials"
)

// app holds the components shared by the data commands.
type app struct {
	source    resource.Source
	validator *collection.Validator
	opts      collection.Options
}

func newApp(cmd *cobra.Command, root *rootOptions) *app {
	remote := resource.NewWorkspaceSource(
		resource.WithRateLimit(viper.GetFloat64("rate_limit")),
		resource.WithClientCredentials(clientcredentials.Config{
			ClientID:     viper.GetString("oauth.client_id"),
			ClientSecret: viper.GetString("oauth.client_secret"),
			TokenURL:     viper.GetString("oauth.token_url"),
			Scopes:       viper.GetStringSlice("oauth.scopes"),
		}),
	)
	source := resource.NewResolver(resource.NewLocalSource(), remote)

	maxDepth := viper.GetInt("max_depth")
	opts := collection.Options{
		Token:  resolveString(cmd, root.Token, "token", "token"),
		Server: resolveString(cmd, root.Server, "server", "server"),
	}

	log.Debug().
		Int("max_depth", maxDepth).
		Bool("token", opts.Token != "").
		Str("server", opts.Server).
		Bool("client_credentials", remote.HasCredentials()).
		Msg("configured sources")

	return &app{
		source:    source,
		validator: collection.NewValidator(source, collection.WithMaxDepth(maxDepth)),
		opts:      opts,
	}
}

func objectsToAny(objs []schema.Object) []any {
	out := make([]any, len(objs))
	for i, obj := range objs {
		out[i] = obj
	}
	return out
}
