package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	usecase "github.com/alexanderramin/waypoint/internal/app"
	"github.com/alexanderramin/waypoint/internal/cli/formatter"
)

// runLineChat is the non-terminal chat loop: one question per line until
// EOF or a quit command.
func runLineChat(ctx context.Context, interactor *usecase.QnaInteractor, in io.Reader, out io.Writer, subgoalID string) error {
	fmt.Fprint(out, formatter.FormatChatWelcome(subgoalID))
	if _, err := interactor.Open(ctx, subgoalID); err != nil {
		return err
	}

	for {
		fmt.Fprint(out, chatPrompt())
		line, readErr := readPromptLine(in)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		question := strings.TrimSpace(line)
		switch {
		case isQuitCommand(question):
			return nil
		case question != "":
			fmt.Fprintln(out)
			if _, err := interactor.Ask(ctx, subgoalID, question); err != nil {
				return err
			}
		}

		if readErr != nil {
			fmt.Fprintln(out)
			return nil
		}
	}
}

func chatPrompt() string {
	return formatter.StylePurple.Render("ask") + formatter.Dim("> ")
}

func isQuitCommand(input string) bool {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q":
		return true
	}
	return false
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
