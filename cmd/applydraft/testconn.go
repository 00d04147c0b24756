package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/applydraft/applydraft/internal/model"
	"github.com/applydraft/applydraft/internal/review"
)

var probeProvider string

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Check that a provider is reachable with your configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var override *model.ProviderID
		if probeProvider != "" {
			id, err := model.ParseProvider(probeProvider)
			if err != nil {
				return err
			}
			override = &id
		} else {
			// No provider given: let the user pick interactively.
			id, err := pickProvider(cmd, a)
			if err != nil {
				return err
			}
			if id == "" {
				return nil // user quit the picker
			}
			override = &id
		}

		res := a.service.TestConnection(cmd.Context(), userID, override)
		if res.Success {
			fmt.Println("ok:", res.Message)
			return nil
		}
		fmt.Println("failed:", res.Message)
		return nil
	},
}

func pickProvider(cmd *cobra.Command, a *app) (model.ProviderID, error) {
	cfg, err := a.resolver.Effective(cmd.Context(), userID)
	if err != nil {
		return "", err
	}

	var items []review.PickerItem
	for _, id := range model.AllProviders {
		p, err := a.registry.Resolve(id)
		if err != nil {
			return "", err
		}
		items = append(items, review.PickerItem{
			Provider:  id,
			Available: p.Available(cfg),
			Active:    id == cfg.Active,
		})
	}
	return review.RunProviderPicker(items)
}

func init() {
	testConnectionCmd.Flags().StringVar(&probeProvider, "provider", "", "provider to probe (default: interactive picker)")
	rootCmd.AddCommand(testConnectionCmd)
}
