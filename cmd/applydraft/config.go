package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/applydraft/applydraft/internal/model"
	"github.com/applydraft/applydraft/internal/secret"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update your provider configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cfg, err := a.store.GetProviderConfig(cmd.Context(), userID)
		if errors.Is(err, model.ErrNotConfigured) {
			fmt.Println("no configuration stored yet")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("active provider: %s\n", cfg.ActiveProvider)
		fmt.Printf("openai:     key=%s model=%s\n", orUnset(secret.Mask(cfg.OpenAIAPIKey)), orUnset(cfg.OpenAIModel))
		fmt.Printf("anthropic:  key=%s model=%s\n", orUnset(secret.Mask(cfg.AnthropicAPIKey)), orUnset(cfg.AnthropicModel))
		fmt.Printf("openrouter: key=%s model=%s\n", orUnset(secret.Mask(cfg.OpenRouterAPIKey)), orUnset(cfg.OpenRouterModel))
		fmt.Printf("local:      url=%s model=%s\n", orUnset(cfg.LocalURL), orUnset(cfg.LocalModel))
		if cfg.Temperature != nil {
			fmt.Printf("temperature: %v\n", *cfg.Temperature)
		}
		if cfg.MaxTokens != nil {
			fmt.Printf("max tokens:  %d\n", *cfg.MaxTokens)
		}
		return nil
	},
}

var (
	setActive         string
	setOpenAIKey      string
	setOpenAIModel    string
	setAnthropicKey   string
	setAnthropicModel string
	setORKey          string
	setORModel        string
	setLocalURL       string
	setLocalModel     string
	setTemperature    float64
	setMaxTokens      int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update configuration fields (only the flags you pass change)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var patch model.ProviderConfigPatch
		flags := cmd.Flags()

		if flags.Changed("active") {
			id, err := model.ParseProvider(setActive)
			if err != nil {
				return err
			}
			patch.ActiveProvider = &id
		}
		if flags.Changed("openai-key") {
			patch.OpenAIAPIKey = &setOpenAIKey
		}
		if flags.Changed("openai-model") {
			patch.OpenAIModel = &setOpenAIModel
		}
		if flags.Changed("anthropic-key") {
			patch.AnthropicAPIKey = &setAnthropicKey
		}
		if flags.Changed("anthropic-model") {
			patch.AnthropicModel = &setAnthropicModel
		}
		if flags.Changed("openrouter-key") {
			patch.OpenRouterAPIKey = &setORKey
		}
		if flags.Changed("openrouter-model") {
			patch.OpenRouterModel = &setORModel
		}
		if flags.Changed("local-url") {
			patch.LocalURL = &setLocalURL
		}
		if flags.Changed("local-model") {
			patch.LocalModel = &setLocalModel
		}
		if flags.Changed("temperature") {
			patch.Temperature = &setTemperature
		}
		if flags.Changed("max-tokens") {
			patch.MaxTokens = &setMaxTokens
		}

		if err := a.store.UpsertProviderConfig(cmd.Context(), userID, patch); err != nil {
			return err
		}
		fmt.Println("configuration updated")
		return nil
	},
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}

func init() {
	f := configSetCmd.Flags()
	f.StringVar(&setActive, "active", "", "active provider (openai, anthropic, openrouter, local)")
	f.StringVar(&setOpenAIKey, "openai-key", "", "OpenAI API key (empty to clear)")
	f.StringVar(&setOpenAIModel, "openai-model", "", "OpenAI model")
	f.StringVar(&setAnthropicKey, "anthropic-key", "", "Anthropic API key (empty to clear)")
	f.StringVar(&setAnthropicModel, "anthropic-model", "", "Anthropic model")
	f.StringVar(&setORKey, "openrouter-key", "", "OpenRouter API key (empty to clear)")
	f.StringVar(&setORModel, "openrouter-model", "", "OpenRouter model")
	f.StringVar(&setLocalURL, "local-url", "", "base URL of the local LLM server")
	f.StringVar(&setLocalModel, "local-model", "", "model served by the local LLM server")
	f.Float64Var(&setTemperature, "temperature", 0, "default sampling temperature [0,2]")
	f.IntVar(&setMaxTokens, "max-tokens", 0, "default response token ceiling [1,8192]")

	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
