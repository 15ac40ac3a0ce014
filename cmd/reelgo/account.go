package main

import (
	"fmt"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account",
	Long: `Create an account on the server.

Usernames are case-sensitive and need at least 3 characters;
passwords need at least 6.

Examples:
  reelgo register alice
  reelgo register alice --generate`,
	Args: cobra.ExactArgs(1),
	RunE: runRegisterCmd,
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in and print a session token",
	Long: `Log in and print a session token.

Export the token so later commands can use it:
  export REELGO_TOKEN=$(reelgo login alice --password secret --quiet)`,
	Args: cobra.ExactArgs(1),
	RunE: runLoginCmd,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoamiCmd,
}

func init() {
	rootCmd.AddCommand(registerCmd, loginCmd, whoamiCmd)
	registerCmd.Flags().String("password", "", "Password (prompted when omitted)")
	registerCmd.Flags().Bool("generate", false, "Generate a random password and print it")
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")
	loginCmd.Flags().BoolP("quiet", "q", false, "Print only the token")
}

// generatePassword returns a random 16 character password with digits
// and symbols.
func generatePassword() (string, error) {
	return password.Generate(16, 4, 2, false, false)
}

func readPassword(cmd *cobra.Command) (string, error) {
	pw, _ := cmd.Flags().GetString("password")
	if pw != "" {
		return pw, nil
	}
	return newPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).promptRequired("Password")
}

func runRegisterCmd(cmd *cobra.Command, args []string) error {
	generate, _ := cmd.Flags().GetBool("generate")

	var (
		pw  string
		err error
	)
	if generate {
		pw, err = generatePassword()
	} else {
		pw, err = readPassword(cmd)
	}
	if err != nil {
		return err
	}

	client := NewClient(serverURL, authToken)
	user, err := client.Register(args[0], pw)
	if err != nil {
		return fmt.Errorf("register failed: %w", err)
	}

	if jsonOutput {
		printJSON(user)
		return nil
	}
	fmt.Printf("Registered %s (id %s)\n", user.Username, user.ID)
	if generate {
		fmt.Printf("Password:  %s\n", pw)
	}
	return nil
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	pw, err := readPassword(cmd)
	if err != nil {
		return err
	}

	client := NewClient(serverURL, "")
	resp, err := client.Login(args[0], pw)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	switch {
	case jsonOutput:
		printJSON(resp)
	case quiet:
		fmt.Println(resp.Token)
	default:
		fmt.Printf("Logged in as %s (score %d, expires %s)\n\n", resp.User.Username, resp.User.Score, resp.ExpiresAt)
		fmt.Printf("export %s=%s\n", EnvToken, resp.Token)
	}
	return nil
}

func runWhoamiCmd(_ *cobra.Command, _ []string) error {
	if authToken == "" {
		return fmt.Errorf("not logged in: set --token or $%s", EnvToken)
	}
	client := NewClient(serverURL, authToken)
	user, err := client.Me()
	if err != nil {
		return fmt.Errorf("whoami failed: %w", err)
	}
	if jsonOutput {
		printJSON(user)
		return nil
	}
	fmt.Printf("%s (id %s)\n", user.Username, user.ID)
	fmt.Printf("Score:      %d\n", user.Score)
	fmt.Printf("Watchlist:  %d titles\n", len(user.Watchlist))
	return nil
}
