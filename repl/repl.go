package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/Remora/hub"
	"github.com/tim-hardcastle/Remora/text"
)

func Start(hub *hub.Hub, in io.Reader, out io.Writer) {
	rline := readline.NewInstance()
	for {
		rline.SetPrompt(makePrompt(hub))
		line, err := rline.Readline()
		if err != nil {
			fmt.Println(text.ERROR, err)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}

		quitRemora := hub.Do(line)
		if quitRemora {
			break
		}
	}
}

func makePrompt(hub *hub.Hub) string {
	if hub.GetCurrentServiceName() == "" {
		return text.PROMPT
	}
	return hub.GetCurrentServiceName() + " " + text.PROMPT
}
