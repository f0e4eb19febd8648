package assist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// FlowSource produces the call-flow description for an entry function.
// Satisfied by flow.Reconstructor.
type FlowSource interface {
	Reconstruct(entry string) string
}

// entryFunction is the conventional starting point for code-logic answers.
const entryFunction = "main"

// Chat is the interactive assistant loop.
type Chat struct {
	client *Client
	flows  FlowSource
	in     io.Reader
	out    io.Writer
}

// NewChat creates a Chat reading queries from in and writing replies to out.
func NewChat(client *Client, flows FlowSource, in io.Reader, out io.Writer) *Chat {
	return &Chat{client: client, flows: flows, in: in, out: out}
}

// Run reads queries until EOF or the quit command.
func (ch *Chat) Run(ctx context.Context) error {
	fmt.Fprintln(ch.out, "Starting chat with the assistant. Type '!q' to exit.")

	scanner := bufio.NewScanner(ch.in)
	for {
		fmt.Fprint(ch.out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "!q" {
			fmt.Fprintln(ch.out, "Exiting chat...")
			return nil
		}
		if query == "" {
			continue
		}

		reply, err := ch.HandleQuery(ctx, query)
		if err != nil {
			fmt.Fprintf(ch.out, "Error: %v\n\n", err)
			continue
		}
		fmt.Fprintf(ch.out, "Assistant: %s\n\n", reply)
	}
}

// HandleQuery classifies the query's intent and produces a reply. Code-logic
// questions are answered from the reconstructed call flow of the indexed
// repository.
func (ch *Chat) HandleQuery(ctx context.Context, query string) (string, error) {
	intent, err := ch.classifyIntent(ctx, query)
	if err != nil {
		return "", err
	}

	var content string
	switch intent {
	case "Overall Code Logic":
		logicFlow := ch.flows.Reconstruct(entryFunction)
		content = fmt.Sprintf(
			"Provide a summary of the overall code logic for a repository. "+
				"Here is the code flow:\n\n%s\n\n"+
				"Summarize the main purpose and flow of the repository.",
			logicFlow)
	case "Casual Chat":
		content = fmt.Sprintf("The user said: '%s'. Respond in a friendly manner.", query)
	default:
		content = fmt.Sprintf("Unrecognized intent.\n\nUser's Query: '%s'", query)
	}

	return ch.client.Complete(ctx,
		"You are an assistant who explains code repository structures, logic flow, and functionality.",
		content)
}

// classifyIntent buckets a query into the supported intent categories.
func (ch *Chat) classifyIntent(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(
		"Classify the user query into one of the following categories: "+
			"['Casual Chat', 'Overall Code Logic']. "+
			"Return only the result category. "+
			"User Query: '%s'", query)
	intent, err := ch.client.Complete(ctx,
		"You are an assistant that excels in recognizing user's prompt intent.",
		prompt)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(intent), "'\""), nil
}
