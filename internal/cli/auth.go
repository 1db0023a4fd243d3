package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mikematt33/ghscope/internal/config"
	"github.com/mikematt33/ghscope/internal/gh"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with GitHub",
	Long: `Log in to GitHub to raise API rate limits.
This command helps you authenticate by:
1. Detecting if the GitHub CLI ('gh') is installed and using its credentials.
2. Or securely prompting for a Personal Access Token (PAT).

The token can be saved to your configuration file for future use.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to GitHub",
	Run:   runAuthLogin,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check authentication status",
	Run:   runAuthStatus,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	token := gh.ResolveToken(cfg.Global.GitHubToken)
	if token == "" {
		fmt.Println("❌ Not authenticated. Run 'ghscope auth login'.")
		os.Exit(1)
	}

	source := "GITHUB_TOKEN environment variable"
	if cfg.Global.GitHubToken != "" {
		source = "config file"
	} else if out, err := exec.Command("gh", "auth", "token").Output(); err == nil && strings.TrimSpace(string(out)) == token {
		source = "gh CLI"
	}

	client := gh.NewClient(token, newLogger())
	login, err := client.Viewer(context.Background())
	if err != nil {
		fmt.Printf("⚠️  Token found (%s) but validation failed: %v\n", source, err)
		os.Exit(1)
	}

	limits, err := client.RateLimit(context.Background())
	fmt.Printf("✅ Authenticated as %s (token from %s)\n", login, source)
	if err == nil {
		fmt.Printf("   Rate limit: %d/%d remaining\n", limits.Remaining, limits.Limit)
	}
}

func runAuthLogin(cmd *cobra.Command, args []string) {
	// Prefer gh CLI credentials when available.
	if _, err := exec.LookPath("gh"); err == nil {
		if out, err := exec.Command("gh", "auth", "token").Output(); err == nil {
			token := strings.TrimSpace(string(out))
			if token != "" {
				fmt.Println("Found existing gh CLI credentials.")
				saveToken(token)
				return
			}
		}
		fmt.Println("GitHub CLI detected but not logged in. Run 'gh auth login' first,")
		fmt.Println("or paste a Personal Access Token below.")
	}
	loginWithToken()
}

func loginWithToken() {
	fmt.Println("\nPlease generate a Personal Access Token (PAT) with 'repo' scope.")
	fmt.Println("Generate one here: https://github.com/settings/tokens/new?scopes=repo&description=ghscope")
	fmt.Print("\nPaste your token: ")

	byteToken, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		// Fallback to a plain read when no terminal is attached.
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("❌ Failed to read token from standard input.")
			return
		}
		byteToken = []byte(line)
	}

	token := strings.TrimSpace(string(byteToken))
	if token == "" {
		fmt.Println("❌ Empty token provided.")
		return
	}
	saveToken(token)
}

// validateToken checks a token with a live API call. Variable so tests
// can stub it out.
var validateToken = func(token string) error {
	client := gh.NewClient(token, newLogger())
	_, err := client.RateLimit(context.Background())
	return err
}

func saveToken(token string) {
	fmt.Println("Validating token...")
	if err := validateToken(token); err != nil {
		fmt.Printf("❌ Token validation failed: %v\n", err)
		fmt.Println("The token may be invalid or expired. Please check and try again.")
		return
	}
	fmt.Println("✅ Token validated successfully!")

	fmt.Print("Store token in ghscope config file? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Token not stored. Use GITHUB_TOKEN or gh CLI to authenticate.")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Error loading config: %v\n", err)
		return
	}
	cfg.Global.GitHubToken = token
	if err := config.Save(cfg); err != nil {
		fmt.Printf("❌ Error saving config: %v\n", err)
		return
	}

	path, _ := config.GetConfigPath()
	fmt.Printf("✅ Token saved to %s\n", path)
}
