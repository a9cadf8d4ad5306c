package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bookchatai/bookchat/internal/chat"
	"github.com/bookchatai/bookchat/internal/config"
	"github.com/bookchatai/bookchat/internal/logger"
	"github.com/bookchatai/bookchat/internal/version"
)

type cliOptions struct {
	configPath  string
	username    string
	password    string
	timeout     time.Duration
	apiBaseURL  string
	jwtToken    string
	showVersion bool
}

func main() {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("BookChat CLI %s\n", version.GetInfo())
		return
	}
	ctx := context.Background()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if strings.TrimSpace(opts.apiBaseURL) == "" {
		opts.apiBaseURL = defaultAPIBaseURL(cfg.Server.Addr)
	}
	opts.apiBaseURL = normalizeBaseURL(opts.apiBaseURL)

	client := &http.Client{Timeout: opts.timeout}
	jwtToken := strings.TrimSpace(opts.jwtToken)
	if jwtToken == "" {
		username := strings.TrimSpace(opts.username)
		password := strings.TrimSpace(opts.password)
		if password == "" {
			password = strings.TrimSpace(os.Getenv("BOOKCHAT_PASSWORD"))
		}
		if username == "" || password == "" {
			logger.L.Error("username and password are required; pass --username/--password or set BOOKCHAT_PASSWORD")
			os.Exit(1)
		}
		jwtToken, err = loginForToken(ctx, client, opts.apiBaseURL, username, password)
		if err != nil {
			logger.L.Error("login failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query != "" {
		if _, err := sendChat(ctx, client, opts.apiBaseURL, jwtToken, "", query); err != nil {
			logger.L.Error("chat failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}
	if err := runInteractive(ctx, client, opts.apiBaseURL, jwtToken); err != nil {
		logger.L.Error("chat failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	defaultConfig := os.Getenv("CONFIG_PATH")
	if strings.TrimSpace(defaultConfig) == "" {
		defaultConfig = config.DefaultConfigPath
	}

	flag.StringVar(&opts.configPath, "config", defaultConfig, "Path to config.toml")
	flag.StringVar(&opts.username, "username", "", "Username for login")
	flag.StringVar(&opts.password, "password", "", "Password for login (or set BOOKCHAT_PASSWORD)")
	flag.StringVar(&opts.jwtToken, "jwt", "", "JWT token (optional)")
	flag.StringVar(&opts.apiBaseURL, "api-url", "", "API server base URL (e.g. http://127.0.0.1:8000)")
	flag.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version information")
	flag.Parse()

	return opts
}

func normalizeBaseURL(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}

func defaultAPIBaseURL(addr string) string {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "http://127.0.0.1:8000"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return normalizeBaseURL(trimmed)
	}
	if strings.HasPrefix(trimmed, ":") {
		return "http://127.0.0.1" + trimmed
	}
	return "http://" + trimmed
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func loginForToken(ctx context.Context, client *http.Client, baseURL, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login failed: %s", strings.TrimSpace(string(payload)))
	}

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if strings.TrimSpace(parsed.AccessToken) == "" {
		return "", fmt.Errorf("login succeeded but token missing")
	}
	return parsed.AccessToken, nil
}

func runInteractive(ctx context.Context, client *http.Client, baseURL, jwtToken string) error {
	reader := bufio.NewScanner(os.Stdin)
	reader.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	chatID := ""
	fmt.Fprint(os.Stdout, "You: ")
	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			fmt.Fprint(os.Stdout, "You: ")
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			return nil
		}
		reply, err := sendChat(ctx, client, baseURL, jwtToken, chatID, line)
		if err != nil {
			return err
		}
		chatID = reply.ChatID
		fmt.Fprint(os.Stdout, "You: ")
	}
	return reader.Err()
}

func sendChat(ctx context.Context, client *http.Client, baseURL, jwtToken, chatID, message string) (chat.Reply, error) {
	body, err := json.Marshal(chat.SendRequest{
		Message: message,
		ChatID:  chatID,
	})
	if err != nil {
		return chat.Reply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return chat.Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	resp, err := client.Do(req)
	if err != nil {
		return chat.Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(resp.Body)
		return chat.Reply{}, fmt.Errorf("api server error: %s", strings.TrimSpace(string(payload)))
	}

	var reply chat.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return chat.Reply{}, err
	}

	fmt.Fprintf(os.Stdout, "Assistant: %s\n", reply.Response)
	for _, book := range reply.Recommendations {
		fmt.Fprintf(os.Stdout, "  [%s] %s - %s\n", book.ID, book.Title, book.Author)
	}
	return reply, nil
}
