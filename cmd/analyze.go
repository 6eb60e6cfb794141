package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/batch"
	"github.com/spigell/resume-analyzer/internal/logger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Analyze resumes from the terminal",
	Long: "Without arguments, asks for the number of resumes and then for each path and job title.\n" +
		"With file arguments, analyzes all of them against --job-title.",
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job-title", "t", "", "job title used for all files given as arguments")
}

// fileProcessor is the part of batch.Processor the terminal driver needs.
type fileProcessor interface {
	ProcessPath(ctx context.Context, index int, path, jobTitle string) batch.Result
	ProcessPaths(ctx context.Context, paths []string, jobTitle string) ([]batch.Result, error)
}

// asker reads one line of input for the given label.
type asker interface {
	Ask(label string) (string, error)
}

type promptAsker struct{}

func (promptAsker) Ask(label string) (string, error) {
	p := promptui.Prompt{Label: label}
	return p.Run()
}

func analyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// analysis text goes to stdout, keep logs out of it
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logger.OutputStderr)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting analysis",
		zap.String("version", version),
		zap.String("provider", config.AI.Provider),
		zap.String("model", config.AI.Model),
	)

	processor, err := newProcessor(ctx, config, logger)
	if err != nil {
		logger.Fatal("building analyzer", zap.Error(err))
	}

	out := cmd.OutOrStdout()

	if len(args) > 0 {
		jobTitle, _ := cmd.Flags().GetString("job-title")
		runFiles(ctx, processor, out, args, jobTitle)
		return
	}

	runSession(ctx, processor, promptAsker{}, out)
}

// runSession is the interactive loop: a count, then a path and a job title per resume.
func runSession(ctx context.Context, processor fileProcessor, in asker, out io.Writer) {
	raw, err := in.Ask("Enter the number of resumes")
	if err != nil {
		reportPromptError(out, err)
		return
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return
	}
	if n <= 0 {
		fmt.Fprintln(out, batch.InvalidCountMessage)
		return
	}

	for i := 1; i <= n; i++ {
		path, err := in.Ask(fmt.Sprintf("Enter resume file %d path", i))
		if err != nil {
			reportPromptError(out, err)
			return
		}

		jobTitle, err := in.Ask(fmt.Sprintf("Enter job title for resume %d", i))
		if err != nil {
			reportPromptError(out, err)
			return
		}

		result := processor.ProcessPath(ctx, i, path, jobTitle)
		if ctx.Err() != nil {
			fmt.Fprintln(out, "\n"+batch.CancelledMessage)
			return
		}

		printResult(out, path, jobTitle, result)
	}
}

// runFiles analyzes the given paths against one job title without prompting.
func runFiles(ctx context.Context, processor fileProcessor, out io.Writer, paths []string, jobTitle string) {
	results, err := processor.ProcessPaths(ctx, paths, jobTitle)
	if err != nil {
		fmt.Fprintln(out, batch.GuardMessage(err))
		return
	}

	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			fmt.Fprintln(out, "\n"+batch.CancelledMessage)
			return
		}
		printResult(out, r.File, jobTitle, r)
	}
}

func printResult(out io.Writer, path, jobTitle string, r batch.Result) {
	fmt.Fprintln(out, batch.TerminalHeader(path, jobTitle))
	fmt.Fprintln(out, r.TerminalText())
	fmt.Fprintln(out, batch.Divider)
}

func reportPromptError(out io.Writer, err error) {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		fmt.Fprintln(out, "\n"+batch.CancelledMessage)
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
