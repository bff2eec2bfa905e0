package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hairizuan-noorazman/script-storyboard/logger"
	"github.com/hairizuan-noorazman/script-storyboard/storyboard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	flagAPIKey     string
	flagScriptFile string
	flagOutput     string
	flagProvider   string
	flagServer     string
)

// errReported marks a failure whose message has already been shown to the user.
var errReported = errors.New("generation failed")

// apiKeyEnv maps each provider to the environment variable holding its key.
var apiKeyEnv = map[storyboard.Provider]string{
	storyboard.ProviderGemini: "GEMINI_API_KEY",
	storyboard.ProviderOpenAI: "OPENAI_API_KEY",
}

var generateCmd = &cobra.Command{
	Use:   "generate [script-file]",
	Short: "Generate image prompts for a script",
	Long: `Reads a script from a file (or stdin when no file is given), sends it to the
generation service and prints the returned markdown list of image prompts.

The API key is taken from --api-key, or from GEMINI_API_KEY / OPENAI_API_KEY
depending on the provider. A .env file in the working directory is honoured.

With --server the script is sent to a running "storyboard serve" instance
instead of directly to the generation service.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&flagAPIKey, "api-key", "k", "", "API key for the generation service")
	generateCmd.Flags().StringVarP(&flagScriptFile, "file", "f", "", "script file to read (default: stdin)")
	generateCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the markdown to this file instead of stdout")
	generateCmd.Flags().StringVar(&flagProvider, "provider", "", "generation provider: gemini or openai (overrides config)")
	generateCmd.Flags().StringVar(&flagServer, "server", "", "URL of a storyboard server to send the request to")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyProviderFlag(&cfg.Generation, flagProvider); err != nil {
		return err
	}

	path := flagScriptFile
	if path == "" && len(args) == 1 {
		path = args[0]
	}
	script, err := readScript(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	credential := resolveCredential(flagAPIKey, cfg.Generation.Provider, os.Getenv)

	var done <-chan storyboard.Outcome
	if flagServer != "" {
		done = NewClient(flagServer, nil).Start(ctx, credential, script)
	} else {
		generator, err := newGenerator(cfg.Generation)
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}
		log := logger.NewLogrusLoggerWithOutput(cfg.Log.Level, cmd.ErrOrStderr())
		done = storyboard.NewController(generator, log).Start(ctx, credential, script)
	}

	out := awaitOutcome(done, cmd.ErrOrStderr())
	if !out.Succeeded() {
		return errReported
	}

	return writeOutput(flagOutput, cmd.OutOrStdout(), out.Text)
}

// awaitOutcome shows a spinner on w until the outcome arrives.
func awaitOutcome(done <-chan storyboard.Outcome, w io.Writer) storyboard.Outcome {
	spinner, err := pterm.DefaultSpinner.WithWriter(w).Start("Analyzing your script and crafting visual prompts...")
	if err != nil {
		out := <-done
		if !out.Succeeded() {
			fmt.Fprintln(w, out.Message())
		}
		return out
	}

	out := <-done
	if out.Succeeded() {
		spinner.Success("Generated image prompts with " + out.Model)
	} else {
		spinner.Fail(out.Message())
	}
	return out
}

// applyProviderFlag overrides the configured provider when value is set.
func applyProviderFlag(cfg *GenerationConfig, value string) error {
	if value == "" {
		return nil
	}
	provider := storyboard.Provider(strings.ToLower(value))
	if !provider.IsValid() {
		return fmt.Errorf("invalid --provider %q (must be 'gemini' or 'openai')", value)
	}
	cfg.Provider = provider
	return nil
}

// readScript reads the script from path, or from stdin when path is empty.
func readScript(path string, stdin io.Reader) (string, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script file: %w", err)
	}
	return string(data), nil
}

// resolveCredential prefers the explicit flag value and falls back to the
// provider's environment variable.
func resolveCredential(flagValue string, provider storyboard.Provider, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	if name, ok := apiKeyEnv[provider]; ok {
		return getenv(name)
	}
	return ""
}

func writeOutput(path string, stdout io.Writer, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	pterm.Success.Println("Image prompts written to " + path)
	return nil
}
