package assist

import (
	"context"
	"fmt"
	"strings"
)

// AnalyzeDocumentation asks the model to summarize a repository's merged
// markdown documentation as JSON with functionalities, prerequisites,
// requirements and installation steps.
func (c *Client) AnalyzeDocumentation(ctx context.Context, markdown string) (string, error) {
	prompt := fmt.Sprintf(
		"Please analyze the following repository documentation content and provide a response in JSON format. "+
			"The JSON should contain the following attributes:\n\n"+
			"1. \"functionalities\": Describe the main functionalities or purpose of the repository.\n"+
			"2. \"prerequisites\": List any prerequisites needed to use this repository.\n"+
			"3. \"requirements\": List the software dependencies required to run the repository.\n"+
			"4. \"installation\": Provide the installation steps in sequence.\n"+
			"If you cannot find information for any of the fields, respond with an empty string for that field.\n\n"+
			"---\n\n%s",
		markdown)
	return c.Complete(ctx,
		"You are an assistant that helps summarize repository documentation in JSON format.",
		prompt)
}

// GenerateDockerfile asks the model for a Dockerfile or compose file based
// on the documentation analysis. Used only when the repository ships no
// docker files of its own.
func (c *Client) GenerateDockerfile(ctx context.Context, analysis string) (string, error) {
	prompt := fmt.Sprintf(
		"Based on the following analysis of repository requirements, prerequisites, and installation steps, "+
			"generate a Dockerfile or docker-compose.yml script to install and run the repository.\n\n---\n\n%s",
		analysis)
	return c.Complete(ctx,
		"You are an assistant that generates Docker configuration files based on repository requirements.",
		prompt)
}

// GenerateRunScript asks the model for a shell script that builds and runs
// the collected docker files, preferring compose when one is present.
func (c *Client) GenerateRunScript(ctx context.Context, dockerFiles map[string]string) (string, error) {
	dockerfile := dockerFiles["Dockerfile"]
	var composeFile string
	for name, content := range dockerFiles {
		if strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml") {
			composeFile = content
			break
		}
	}

	var prompt string
	switch {
	case dockerfile != "" && composeFile != "":
		prompt = fmt.Sprintf(
			"Given the following Docker-related files, generate a shell script to set up and run the application using "+
				"the most appropriate commands. Prioritize using docker-compose if it is available, as it will handle "+
				"multi-container setups and service orchestration. If a compose file is available, use 'docker-compose up'. "+
				"Otherwise, if only a Dockerfile is present, use 'docker build' and 'docker run'.\n\n"+
				"Dockerfile:\n%s\n\nCompose File:\n%s",
			dockerfile, composeFile)
	case dockerfile != "":
		prompt = fmt.Sprintf(
			"Given only a Dockerfile, generate a shell script to build and run the Docker container using "+
				"'docker build' and 'docker run'. Ensure the script is practical for a typical application setup.\n\n"+
				"Dockerfile:\n%s",
			dockerfile)
	default:
		return "", fmt.Errorf("no docker-related files found to generate a run script")
	}

	return c.Complete(ctx,
		"You are an assistant that generates scripts to run Docker configurations.",
		prompt)
}
