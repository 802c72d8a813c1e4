package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/teyvat-tools/genshinbot/internal/discord"
	"github.com/teyvat-tools/genshinbot/internal/dotenv"
	"github.com/teyvat-tools/genshinbot/internal/emoji"
	"github.com/teyvat-tools/genshinbot/internal/genshindev"
	"github.com/teyvat-tools/genshinbot/internal/hoyolab"
	"github.com/teyvat-tools/genshinbot/internal/talents"
)

func main() {
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}))

	if err := dotenv.LoadDefault(); err != nil {
		log.Warn("could not load .env file, continuing with environment variables from system", "err", err)
	}
	setLogLevel(os.Getenv("LOG_LEVEL"))

	// Check if we should run the Discord bot or print a talent plan
	mode := os.Getenv("MODE")

	switch mode {
	case "discord":
		runDiscordBot()
	case "talents":
		runTalents()
	default:
		log.Info("MODE not set or invalid, set MODE=discord to run the bot or MODE=talents to print a talent plan")
		runTalents()
	}
}

func setLogLevel(level string) {
	if level == "" {
		return
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level", "level", level)
		return
	}
	log.SetLevel(parsed)
}

func runDiscordBot() {
	config, err := discord.LoadConfig()
	if err != nil {
		log.Fatal("loading configuration", "err", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatal("configuration validation failed", "err", err)
	}
	setLogLevel(config.LogLevel)

	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	genshin := hoyolab.NewClient(config.HoyolabURL, config.GenshinUID, config.GenshinToken, nil)
	if err := genshin.Verify(ctx); err != nil {
		log.Fatal("verifying HoYoLAB credentials", "err", err)
	}

	store, err := emoji.Open(ctx, config.DatabaseURL)
	if err != nil {
		log.Fatal("opening emoji database", "err", err)
	}

	devData := genshindev.NewClient(config.GenshinDevURL, nil)

	bot, err := discord.NewDiscordBot(config, genshin, devData, store)
	if err != nil {
		log.Fatal("creating bot", "err", err)
	}

	log.Info("starting Discord bot")
	if err := bot.Start(); err != nil {
		log.Fatal("starting bot", "err", err)
	}

	discord.SetupCloseHandler(func() error {
		defer store.Close()
		return bot.Stop()
	})

	log.Info("bot is now running, press CTRL-C to exit")
	select {}
}

// runTalents prints the talent materials of CHARACTER between FROM and TO.
func runTalents() {
	character := os.Getenv("CHARACTER")
	if character == "" {
		character = "amber"
	}
	from := envInt("FROM", talents.MinLevel)
	to := envInt("TO", talents.MaxLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := genshindev.NewClient(os.Getenv("GENSHIN_DEV_ENDPOINT"), nil)
	materials, err := client.TalentMaterials(ctx, character)
	if err != nil {
		log.Fatal("fetching talent materials", "character", character, "err", err)
	}

	lines, err := talents.Plan(from, to, materials)
	if err != nil {
		log.Fatal("planning talent levels", "from", from, "to", to, "err", err)
	}

	fmt.Printf("%s talent materials, level %d to %d (per talent)\n", character, from, to)
	for _, l := range lines {
		fmt.Printf("  Lv. %d -> %d  %-32s %d★  x%d\n", l.Start, l.End, l.Name, l.Rarity, l.Amount)
	}
	fmt.Println("Total")
	for _, t := range talents.Totals(lines) {
		fmt.Printf("  %-32s x%d\n", t.Name, t.Amount)
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("ignoring invalid integer", "key", key, "value", v)
		return fallback
	}
	return n
}
