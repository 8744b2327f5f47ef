package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=bankcore_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultChannelID = "BankApp"
const defaultChannelKey = "BankAppKey001"
const defaultCoreBankingURL = "http://localhost:9090"

type Config struct {
	DatabaseDSN           string
	MigrationsDir         string
	Port                  string
	ChannelID             string
	ChannelKey            string
	CoreBankingURL        string
	CoreBankingTimeout    time.Duration
	NotificationWorkers   int
	NotificationQueueSize int
	TelegramBotToken      string
	TelegramChatID        int64
}

func Load() (Config, error) {
	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	port := strings.TrimSpace(os.Getenv("SERVER_PORT"))
	if port == "" {
		port = "8080"
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	coreBankingURL := strings.TrimSpace(os.Getenv("CORE_BANKING_URL"))
	if coreBankingURL == "" {
		coreBankingURL = defaultCoreBankingURL
	}

	// Authorizer calls fail closed on expiry, so the timeout must stay bounded.
	timeoutSeconds := intEnv("CORE_BANKING_TIMEOUT_SECONDS", 5)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 5
	}

	workers := intEnv("NOTIFICATION_WORKERS", 4)
	if workers <= 0 {
		workers = 4
	}

	queueSize := intEnv("NOTIFICATION_QUEUE_SIZE", 256)
	if queueSize <= 0 {
		queueSize = 256
	}

	chatID, _ := strconv.ParseInt(strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")), 10, 64)

	return Config{
		DatabaseDSN:           normalizeConnectionString(conn),
		MigrationsDir:         "migrations",
		Port:                  port,
		ChannelID:             channelID,
		ChannelKey:            channelKey,
		CoreBankingURL:        coreBankingURL,
		CoreBankingTimeout:    time.Duration(timeoutSeconds) * time.Second,
		NotificationWorkers:   workers,
		NotificationQueueSize: queueSize,
		TelegramBotToken:      strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:        chatID,
	}, nil
}

func intEnv(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// normalizeConnectionString accepts both libpq keyword DSNs and the
// semicolon-separated form used by the ops tooling, and emits a libpq DSN.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
