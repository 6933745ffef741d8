package main

import (
	"errors"
	"fmt"
	"strings"

	figmatokens "github.com/kataras/figma-tokens"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configName is the optional config file looked up in the working directory.
const configName = "figma-tokens"

// config holds the merged settings. Precedence: flags, environment, config
// file, defaults.
type config struct {
	Token         string
	FileKey       string
	TokensDir     string
	ArtifactsDir  string
	Formats       []string
	Title         string
	CSSSelector   string
	TemplatesDir  string
	ComponentsDir string
	Manifest      string
	Extension     string
	LogFormat     string
	// Agents maps an agent name to the command line that replaces the
	// built-in agent, e.g. reviewer: [node, agents/reviewer/agent.mjs].
	Agents map[string][]string
}

func loadConfig(cmd *cobra.Command, configFile string) (*config, error) {
	v := viper.New()

	v.SetDefault("tokens-dir", figmatokens.DefaultTokensDir)
	v.SetDefault("artifacts-dir", figmatokens.DefaultArtifactsDir)
	v.SetDefault("templates-dir", figmatokens.DefaultTemplatesDir)
	v.SetDefault("components-dir", figmatokens.DefaultComponentsDir)
	v.SetDefault("log-format", "text")

	v.SetEnvPrefix("FIGMA_TOKENS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// The pull script's historical variable names.
	if err := v.BindEnv("token", "FIGMA_TOKEN", "FIGMA_TOKENS_TOKEN"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("file-key", "FIGMA_FILE_KEY", "FIGMA_TOKENS_FILE_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	return &config{
		Token:         v.GetString("token"),
		FileKey:       v.GetString("file-key"),
		TokensDir:     v.GetString("tokens-dir"),
		ArtifactsDir:  v.GetString("artifacts-dir"),
		Formats:       figmatokens.ParseList(strings.Join(v.GetStringSlice("formats"), ",")),
		Title:         v.GetString("title"),
		CSSSelector:   v.GetString("css-selector"),
		TemplatesDir:  v.GetString("templates-dir"),
		ComponentsDir: v.GetString("components-dir"),
		Manifest:      v.GetString("manifest"),
		Extension:     v.GetString("ext"),
		LogFormat:     v.GetString("log-format"),
		Agents:        v.GetStringMapStringSlice("agents"),
	}, nil
}

func (c *config) options(logger figmatokens.Logger) figmatokens.Options {
	return figmatokens.Options{
		AccessToken:   c.Token,
		FileKey:       c.FileKey,
		TokensDir:     c.TokensDir,
		ArtifactsDir:  c.ArtifactsDir,
		Formats:       c.Formats,
		Title:         c.Title,
		CSSSelector:   c.CSSSelector,
		TemplatesDir:  c.TemplatesDir,
		ComponentsDir: c.ComponentsDir,
		Manifest:      c.Manifest,
		Extension:     c.Extension,
		Logger:        logger,
	}
}
