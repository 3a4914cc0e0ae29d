package provision

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// ErrDeclined is returned when the operator answers "n" to the recreate
// prompt. It is a clean abort, not an error report; the CLI exits non-zero
// without a failure banner.
var ErrDeclined = errors.New("recreate declined")

// InvalidChoiceError reports a recreate-prompt answer that is neither "y" nor "n".
type InvalidChoiceError struct {
	Input string
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf(messages.ProvisionInvalidChoiceFmt, e.Input)
}

// Prompter asks for destructive-recreate consent.
type Prompter interface {
	ConfirmRecreate(name string) error
}

// ReaderPrompter implements Prompter over plain reader/writer streams.
//
// The prompt accepts exactly "y" or "n", case-sensitive: "Y", "N", and every
// other answer are invalid options, not retried. This matches the historical
// behavior operators script against.
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// ConfirmRecreate returns nil for "y", ErrDeclined for "n", and an
// InvalidChoiceError for anything else.
func (p *ReaderPrompter) ConfirmRecreate(name string) error {
	if _, err := fmt.Fprintf(p.Out, messages.ProvisionRecreatePromptFmt, name); err != nil {
		return err
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf(messages.ProvisionReadPromptFmt, err)
	}
	switch strings.TrimRight(line, "\r\n") {
	case "y":
		return nil
	case "n":
		return ErrDeclined
	default:
		return &InvalidChoiceError{Input: strings.TrimRight(line, "\r\n")}
	}
}
