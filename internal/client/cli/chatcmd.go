package cli

import (
	"context"
	"fmt"
)

// Chat asks the assistant one question and streams the answer to the
// console.
func (a *App) Chat(ctx context.Context) error {
	question, err := GetSimpleText(a.reader, "Ask the assistant", a.out)
	if err != nil {
		return err
	}
	if question == "" {
		return nil
	}

	err = a.chat.Ask(ctx, question, func(token string) {
		fmt.Fprint(a.out, token)
	})
	fmt.Fprintln(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "Assistant unavailable: %v\n", err)
	}
	return err
}
