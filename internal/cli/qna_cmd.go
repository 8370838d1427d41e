package cli

import (
	"errors"
	"fmt"
	"strings"

	usecase "github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
	"github.com/alexanderramin/waypoint/internal/domain"
	"github.com/alexanderramin/waypoint/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newQnaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qna",
		Short: "Ask questions about a subgoal",
	}

	cmd.AddCommand(
		newQnaOpenCmd(app),
		newQnaAskCmd(app),
		newQnaChatCmd(app),
	)

	return cmd
}

func newQnaOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <subgoal-id>",
		Short: "Show the conversation history of a subgoal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presenter := formatter.NewTerminalPresenter(cmd.OutOrStdout())
			_, err := usecase.NewQnaInteractor(app.Qna, presenter).Open(cmd.Context(), args[0])
			return err
		},
	}
}

func newQnaAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask <subgoal-id> "<question>"`,
		Short: "Ask one question about a subgoal",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args[1:], " ")

			var presenter usecase.QnaPresenter = formatter.NewTerminalPresenter(cmd.OutOrStdout())
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
				presenter = spinnerPresenter{QnaPresenter: presenter, stop: stop}
			}

			_, err := usecase.NewQnaInteractor(app.Qna, presenter).Ask(cmd.Context(), args[0], question)
			stop()
			if errors.Is(err, service.ErrEmptyQuestion) {
				return fmt.Errorf("nothing to ask: the question is blank")
			}
			return err
		},
	}
}

func newQnaChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <subgoal-id>",
		Short: "Start a conversation about a subgoal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			subgoalID := args[0]

			switch {
			case app.LLMAvailable == nil:
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("LLM is disabled; answers will be placeholders. Enable with WAYPOINT_LLM_ENABLED=true"))
			case !app.LLMAvailable(ctx):
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render("LLM provider is not reachable; answers may fall back."))
			}

			if !app.interactive() {
				interactor := usecase.NewQnaInteractor(app.Qna, formatter.NewTerminalPresenter(cmd.OutOrStdout()))
				return runLineChat(ctx, interactor, cmd.InOrStdin(), cmd.OutOrStdout(), subgoalID)
			}

			_, err := tea.NewProgram(newQnaChatView(ctx, app.Qna, subgoalID), tea.WithAltScreen()).Run()
			return err
		},
	}
}

// spinnerPresenter stops the spinner before anything is written to stdout.
type spinnerPresenter struct {
	usecase.QnaPresenter
	stop func()
}

func (p spinnerPresenter) PresentUpdate(snap domain.QnaSnapshot) {
	p.stop()
	p.QnaPresenter.PresentUpdate(snap)
}
