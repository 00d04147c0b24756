package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/applydraft/applydraft/internal/model"
)

var profileFile string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the candidate profile used for prompts",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store or replace your candidate profile from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileFile == "" {
			return fmt.Errorf("--file is required")
		}

		data, err := os.ReadFile(profileFile)
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		var profile model.CandidateProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			return fmt.Errorf("parse profile: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.PutProfile(cmd.Context(), userID, &profile); err != nil {
			return err
		}
		fmt.Println("profile stored")
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored candidate profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		profile, err := a.store.GetProfile(cmd.Context(), userID)
		if errors.Is(err, model.ErrProfileNotFound) {
			fmt.Println("no profile stored yet")
			return nil
		}
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileFile, "file", "", "path to a profile JSON file")
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
