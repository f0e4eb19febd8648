// Package main provides the autocontain CLI: clone a GitHub repository,
// index its Python sources into the local store, generate container scripts
// from its documentation, and chat about its call flow.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/autocontain/autocontain/internal/assist"
	"github.com/autocontain/autocontain/internal/config"
	"github.com/autocontain/autocontain/internal/flow"
	"github.com/autocontain/autocontain/internal/index"
	"github.com/autocontain/autocontain/internal/repo"
	"github.com/autocontain/autocontain/internal/scripts"
	"github.com/autocontain/autocontain/internal/store"
)

var version = "dev"

var persist bool

var rootCmd = &cobra.Command{
	Use:     "autocontain",
	Short:   "Analyze, index and containerize GitHub repositories",
	Version: version,
}

var indexCmd = &cobra.Command{
	Use:   "index <github-link>",
	Short: "Clone a repository, index its sources and generate container scripts",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

var flowCmd = &cobra.Command{
	Use:   "flow [entry-function]",
	Short: "Print the reconstructed call flow from an entry function",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFlow,
}

var rmCmd = &cobra.Command{
	Use:   "rm <name-or-link>",
	Short: "Remove a repository's local copy, scripts and indexed data",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant about the indexed repository",
	RunE:  runChat,
}

var treeCmd = &cobra.Command{
	Use:   "tree <name>",
	Short: "Print the directory tree of a cloned repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Execute the generated run script for a repository",
	Args:  cobra.ExactArgs(1),
	RunE:  runInstall,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove local copies and scripts of all unpersisted repositories",
	RunE:  runCleanup,
}

func init() {
	indexCmd.Flags().BoolVar(&persist, "persist", false, "keep the local copy after cleanup")
	rootCmd.AddCommand(indexCmd, flowCmd, rmCmd, chatCmd, treeCmd, installCmd, cleanupCmd)
}

func main() {
	// Load .env if present (local development), ignore when missing.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.DBPath != "" {
		return store.OpenPath(cfg.DBPath)
	}
	return store.Open()
}

func runIndex(cmd *cobra.Command, args []string) error {
	link := args[0]
	if !strings.HasPrefix(link, "https://github.com/") {
		return fmt.Errorf("not a GitHub repository link: %s", link)
	}

	ctx := cmd.Context()
	cfg := config.FromEnv()
	mgr := repo.NewManager(cfg)

	exists, err := mgr.CheckRemote(ctx, link)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("repository not found: %s", link)
	}

	name, localPath, err := mgr.Clone(ctx, link, persist)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	repoID, err := index.New(s).IndexRepository(ctx, name, localPath)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %s (repository id %d)\n", name, repoID)

	return generateScripts(ctx, cfg, mgr, name, localPath)
}

// generateScripts scans a cloned repository's documentation and docker
// files and, when an OpenAI key is configured, produces an analysis plus a
// run script under scripts/<name>. Missing credentials downgrade this step
// to a notice instead of failing the indexing run.
func generateScripts(ctx context.Context, cfg *config.Config, mgr *repo.Manager, name, localPath string) error {
	content, err := repo.ScanContent(localPath)
	if err != nil {
		return err
	}
	slog.Info("index.content", "repo", name,
		"markdown_files", content.MarkdownCount, "docker_files", len(content.DockerFiles))

	client, err := assist.NewClient(cfg)
	if err != nil {
		fmt.Println("Skipping analysis and script generation:", err)
		return nil
	}

	scriptsPath, err := mgr.ScriptsPath(name)
	if err != nil {
		return err
	}

	analysis, err := client.AnalyzeDocumentation(ctx, content.Markdown)
	if err != nil {
		return fmt.Errorf("analyze documentation: %w", err)
	}
	if err := scripts.WriteAnalysis(scriptsPath, analysis); err != nil {
		return err
	}

	if len(content.DockerFiles) == 0 {
		generated, err := client.GenerateDockerfile(ctx, analysis)
		if err != nil {
			return fmt.Errorf("generate dockerfile: %w", err)
		}
		content.DockerFiles["Dockerfile"] = generated
	}
	if err := scripts.WriteDockerFiles(scriptsPath, content.DockerFiles); err != nil {
		return err
	}

	runScript, err := client.GenerateRunScript(ctx, content.DockerFiles)
	if err != nil {
		return fmt.Errorf("generate run script: %w", err)
	}
	if _, err := scripts.WriteRunScript(scriptsPath, runScript); err != nil {
		return err
	}

	fmt.Printf("Scripts written to %s\n", scriptsPath)
	return nil
}

func runFlow(cmd *cobra.Command, args []string) error {
	entry := "main"
	if len(args) == 1 {
		entry = args[0]
	}

	cfg := config.FromEnv()
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Print(flow.New(s).Reconstruct(entry))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := repo.NameFromLink(args[0])
	cfg := config.FromEnv()

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if r, err := s.GetRepositoryByName(name); err == nil {
		if err := s.DeleteRepository(r.ID); err != nil {
			return err
		}
	}

	if err := repo.NewManager(cfg).Remove(name); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", name)
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()

	client, err := assist.NewClient(cfg)
	if err != nil {
		return err
	}

	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	chat := assist.NewChat(client, flow.New(s), os.Stdin, os.Stdout)
	return chat.Run(cmd.Context())
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	path := filepath.Join(cfg.SourceDir, args[0])
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("no local copy of %s: %w", args[0], err)
	}
	fmt.Print(repo.RenderTree(path))
	return nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	scriptPath := filepath.Join(cfg.ScriptsDir, args[0], scripts.RunScriptName)
	if _, err := os.Stat(scriptPath); err != nil {
		return fmt.Errorf("no run script for %s: %w", args[0], err)
	}
	return scripts.Run(cmd.Context(), scriptPath)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	return repo.NewManager(config.FromEnv()).Cleanup()
}
