package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salesdojo/salesdojo/internal/output"
	"github.com/salesdojo/salesdojo/internal/session"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <scenario-id>",
	Short: "Run an interactive practice session in the terminal",
	Long: `Run a practice conversation against a scenario's prospect.

Type your messages at the prompt. Commands:
  /state   show phase, mood, and topics discussed so far
  /end     end the session and get your coaching summary`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return practiceRun(args[0])
	},
}

func init() {
	rootCmd.AddCommand(practiceCmd)
}

func practiceRun(scenarioID string) error {
	cat, err := getCatalog()
	if err != nil {
		return err
	}
	mgr := newManager(cat)
	ctx := context.Background()

	state, err := mgr.Start(ctx, scenarioID)
	if err != nil {
		return err
	}
	sc := state.Scenario

	ui.Info("Scenario: %s", output.Cyan(sc.Title))
	ui.Info("You're calling %s, %s at %s. Mood: %s. Difficulty: %s.",
		sc.ProspectName, sc.ProspectRole, sc.Company,
		output.MoodColor(string(state.Mood)), output.DifficultyColor(string(sc.Difficulty)))
	ui.Info("Type your opener. /state shows session state, /end finishes.")
	fmt.Fprintln(ui.Out)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprintf(ui.Out, "%s ", output.Green("you>"))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/end" {
			break
		}
		if line == "/state" {
			printSessionState(mgr, state.SessionID)
			continue
		}

		result, err := mgr.Turn(ctx, state.SessionID, line)
		if err != nil {
			// The user turn is kept; retrying sends a fresh message.
			ui.Error("prospect reply failed: %v", err)
			continue
		}

		fmt.Fprintf(ui.Out, "%s %s\n", output.Cyan(sc.ProspectName+">"), result.Reply)
		ui.VerboseLog("phase=%s mood=%s topics=%s",
			result.State.Phase, result.State.Mood, strings.Join(result.State.Topics, ","))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	summary, err := mgr.End(ctx, state.SessionID)
	if err != nil {
		return err
	}

	fmt.Fprintln(ui.Out)
	ui.Success("Session ended after %d messages (%ds).", summary.MessageCount, summary.Duration)
	fmt.Fprintln(ui.Out)

	printList := func(title string, items []string) {
		fmt.Fprintf(ui.Out, "%s\n", output.Cyan(title))
		for _, item := range items {
			fmt.Fprintf(ui.Out, "  - %s\n", item)
		}
		fmt.Fprintln(ui.Out)
	}
	printList("Key moments", summary.KeyMoments)
	printList("Strengths", summary.Strengths)
	printList("Areas for improvement", summary.AreasForImprovement)
	fmt.Fprintf(ui.Out, "%s\n  %s\n", output.Cyan("Overall"), summary.OverallFeedback)

	return nil
}

func printSessionState(mgr *session.Manager, sessionID string) {
	state, err := mgr.Get(sessionID)
	if err != nil {
		ui.Error("get session: %v", err)
		return
	}
	fmt.Fprintf(ui.Out, "phase: %s  mood: %s\n",
		output.PhaseColor(string(state.Phase)), output.MoodColor(string(state.Mood)))
	if len(state.Topics) > 0 {
		fmt.Fprintf(ui.Out, "topics: %s\n", strings.Join(state.Topics, ", "))
	}
	for _, note := range state.CoachingNotes {
		fmt.Fprintf(ui.Out, "note: %s\n", note)
	}
}
