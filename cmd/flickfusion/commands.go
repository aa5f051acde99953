package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/api"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/config"
	"github.com/RoBiul-Hasan-Jisan/FlickFusion/internal/storage"
)

// --- ask ---

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Send one message to the bot",
	Long: `Send one message to the bot and print its reply.

Examples:
  flickfusion ask "movies like Inception"
  flickfusion ask --session s1 I feel sad`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		reply, err := sendChat(cmd.Context(), client, strings.Join(args, " "), session)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Response)
		if session == "" {
			printStatus("Session", "%s", reply.SessionID)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("session", "", "conversation session ID (generated when empty)")
}

func sendChat(ctx context.Context, client *apiClient, message, session string) (api.ChatResponse, error) {
	resp, err := client.post(ctx, "/chat", api.ChatRequest{Message: message, SessionID: session})
	if err != nil {
		return api.ChatResponse{}, err
	}
	var reply api.ChatResponse
	if err := decodeJSON(resp, &reply); err != nil {
		return api.ChatResponse{}, err
	}
	return reply, nil
}

// --- chat ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the bot interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		printStep("Type a message, or \"quit\" to leave.")
		return chatLoop(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout(), session)
	},
}

func init() {
	chatCmd.Flags().String("session", "", "conversation session ID (generated when empty)")
}

// chatLoop sends each input line to the bot, keeping one session for the
// whole conversation.
func chatLoop(ctx context.Context, client *apiClient, in io.Reader, out io.Writer, session string) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, colorize(colorBold, "you> "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		reply, err := sendChat(ctx, client, line, session)
		if err != nil {
			return err
		}
		session = reply.SessionID
		fmt.Fprintf(out, "%s %s\n", colorize(colorCyan, "bot>"), reply.Response)
	}
}

// --- similar ---

var similarCmd = &cobra.Command{
	Use:   "similar <title>",
	Short: "List movies similar to a title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		title := strings.Join(args, " ")
		path := fmt.Sprintf("/similar?title=%s&limit=%d", url.QueryEscape(title), limit)
		movies, err := fetchMovies(cmd.Context(), client, path)
		if err != nil {
			return err
		}
		printMovies(cmd.OutOrStdout(), movies)
		return nil
	},
}

func init() {
	similarCmd.Flags().Int("limit", 10, "maximum number of results")
}

// --- search ---

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over titles and overviews",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		path := fmt.Sprintf("/search?q=%s&limit=%d", url.QueryEscape(query), limit)
		movies, err := fetchMovies(cmd.Context(), client, path)
		if err != nil {
			return err
		}
		printMovies(cmd.OutOrStdout(), movies)
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 5, "maximum number of results")
}

func fetchMovies(ctx context.Context, client *apiClient, path string) ([]api.MovieView, error) {
	resp, err := client.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var movies []api.MovieView
	if err := decodeJSON(resp, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// --- recent ---

var recentCmd = &cobra.Command{
	Use:   "recent [id]",
	Short: "List journaled chat turns, or show one in full",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			resp, err := client.get(cmd.Context(), "/interactions/"+url.PathEscape(args[0]))
			if err != nil {
				return err
			}
			var ix storage.Interaction
			if err := decodeJSON(resp, &ix); err != nil {
				return err
			}
			out, err := jsonIndent(ix)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		session, _ := cmd.Flags().GetString("session")
		path := fmt.Sprintf("/interactions?limit=%d", limit)
		if session != "" {
			path += "&session=" + url.QueryEscape(session)
		}

		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}
		var interactions []storage.Interaction
		if err := decodeJSON(resp, &interactions); err != nil {
			return err
		}
		printInteractions(cmd.OutOrStdout(), interactions)
		return nil
	},
}

func init() {
	recentCmd.Flags().Int("limit", 20, "maximum number of turns to list")
	recentCmd.Flags().String("session", "", "only list turns from this session")
}

func printInteractions(w io.Writer, interactions []storage.Interaction) {
	if len(interactions) == 0 {
		fmt.Fprintln(w, "No interactions found.")
		return
	}
	for _, ix := range interactions {
		query := ix.UserQuery
		if utf8.RuneCountInString(query) > 60 {
			query = string([]rune(query)[:60]) + "..."
		}
		id := ix.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s  %s  %-22s %s\n",
			colorize(colorCyan, id),
			ix.CreatedAt.Format("2006-01-02 15:04"),
			ix.Intent,
			query,
		)
	}
}

// --- feedback ---

var feedbackCmd = &cobra.Command{
	Use:   "feedback <id> <score> [notes...]",
	Short: "Rate a journaled reply (-1, 0 or 1)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil || score < -1 || score > 1 {
			return fmt.Errorf("score must be -1, 0 or 1, got %q", args[1])
		}
		notes := strings.Join(args[2:], " ")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/interactions/"+url.PathEscape(args[0])+"/feedback",
			api.FeedbackRequest{Score: score, Notes: notes})
		if err != nil {
			return err
		}
		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Feedback %d recorded for %s", score, args[0])
		return nil
	},
}

func init() {
	// Stop flag parsing at the ID so a score of -1 is read as an argument.
	feedbackCmd.Flags().SetInterspersed(false)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s  %s\n",
				colorize(colorBold, k.Key), k.Value, colorize(colorCyan, "$"+k.EnvVar))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: "Set a configuration value in the config file.\n\nValid keys:\n  " +
		strings.Join(config.ValidKeys(), "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
