package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/applydraft/applydraft/internal/model"
	"github.com/applydraft/applydraft/internal/review"
)

var (
	jobFile   string
	company   string
	question  string
	charLimit int
	useReview bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate application material with the active provider",
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter for a job description",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := readJobDescription(jobFile)
		if err != nil {
			return err
		}

		result, err := a.service.GenerateCoverLetter(cmd.Context(), userID, job, company)
		if err != nil {
			return err
		}
		return emit(a, "Cover letter", result)
	},
}

var answerCmd = &cobra.Command{
	Use:   "answer",
	Short: "Answer an application question from your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if question == "" {
			return fmt.Errorf("--question is required")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.service.GenerateAnswer(cmd.Context(), userID, question)
		if err != nil {
			return err
		}
		return emit(a, "Answer", result)
	},
}

var smartAnswerCmd = &cobra.Command{
	Use:   "smart-answer",
	Short: "Answer a question in the context of a specific job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if question == "" {
			return fmt.Errorf("--question is required")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var job string
		if jobFile != "" {
			job, err = readJobDescription(jobFile)
			if err != nil {
				return err
			}
		}

		result, err := a.service.GenerateSmartAnswer(cmd.Context(), userID, question, job, charLimit)
		if err != nil {
			return err
		}
		return emit(a, "Answer", result)
	},
}

var resumeFeedbackCmd = &cobra.Command{
	Use:   "resume-feedback",
	Short: "Get feedback on your profile against a target job",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		job, err := readJobDescription(jobFile)
		if err != nil {
			return err
		}

		result, err := a.service.GenerateResumeOptimization(cmd.Context(), userID, job)
		if err != nil {
			return err
		}
		return emit(a, "Resume feedback", result)
	},
}

func init() {
	for _, c := range []*cobra.Command{coverLetterCmd, smartAnswerCmd, resumeFeedbackCmd} {
		c.Flags().StringVar(&jobFile, "job-file", "", "file containing the job description")
	}
	coverLetterCmd.Flags().StringVar(&company, "company", "", "company name for the letter")
	answerCmd.Flags().StringVar(&question, "question", "", "the application question")
	smartAnswerCmd.Flags().StringVar(&question, "question", "", "the application question")
	smartAnswerCmd.Flags().IntVar(&charLimit, "limit", 0, "hard character limit for the answer (0 = none)")

	for _, c := range []*cobra.Command{coverLetterCmd, answerCmd, smartAnswerCmd, resumeFeedbackCmd} {
		c.Flags().BoolVar(&useReview, "review", false, "open the result in the interactive viewer")
		generateCmd.AddCommand(c)
	}
	rootCmd.AddCommand(generateCmd)
}

// readJobDescription loads the job text from a file, or from stdin when
// no file is given (so `pbpaste | applydraft generate cover-letter` works).
func readJobDescription(path string) (string, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("no --job-file given and reading stdin failed: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(data), nil
}

func emit(a *app, title string, result *model.GenerationResult) error {
	if useReview {
		return review.RunViewer(title, result)
	}
	fmt.Println(result.Text)
	a.logger.Debug("generated",
		"provider", result.Provider,
		"model", result.Model,
		"tokens", result.TokensUsed,
	)
	return nil
}
