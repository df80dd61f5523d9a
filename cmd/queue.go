package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/venturemap/venturemap/internal/logger"
	"github.com/venturemap/venturemap/internal/urlqueue"
)

const (
	PromptAddURL     = "Add a URL"
	PromptImportFile = "Import URLs from a file (one per line)"
	PromptImportCSV  = "Import URLs from a CSV file"
	PromptRemoveURL  = "Remove a URL"
	PromptShowQueue  = "Show the queue"
	PromptExport     = "Export the queue to a file"
	PromptPersist    = "Save and trigger the scrape"
	PromptQuit       = "Quit"
	PromptBack       = "back"
)

var errExit = errors.New("exit requested")

var queuePrompt = promptui.Select{
	Label: "URL queue",
	Items: []string{
		PromptAddURL, PromptImportFile, PromptImportCSV, PromptRemoveURL,
		PromptShowQueue, PromptExport, PromptPersist, PromptQuit,
	},
}

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Manage the scrape URL queue interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		runQueue(cmd)
	},
}

func init() {
	rootCmd.AddCommand(queueCmd)

	queueCmd.Flags().StringP("type", "t", string(urlqueue.TypeStartup), "queue type: startup or vc")
}

func runQueue(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	qtype, err := urlqueue.ParseType(cmd.Flag("type").Value.String())
	if err != nil {
		logger.Fatal("parsing queue type", zap.Error(err))
	}

	storeClient, err := buildStoreClient(config, logger)
	if err != nil {
		logger.Fatal("building store client", zap.Error(err))
	}

	notifier := buildNotifier(config.Webhook, logger)
	queue := urlqueue.New(qtype)

	logger.Info("managing url queue", zap.String("queue_type", string(qtype)))

	for {
		_, action, err := queuePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleQueueAction(ctx, action, queue, storeClient, notifier, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Error("action failed", zap.Error(err))
		}
	}
}

func handleQueueAction(ctx context.Context, action string, queue *urlqueue.Queue, store urlqueue.RemoteQueue, notifier urlqueue.Notifier, logger *zap.Logger) error {
	switch action {
	case PromptAddURL:
		return addQueueURL(queue, logger)
	case PromptImportFile:
		return importQueueFile(queue, logger, queue.AddBulk)
	case PromptImportCSV:
		return importQueueFile(queue, logger, queue.AddCSV)
	case PromptRemoveURL:
		return removeQueueURL(queue, logger)
	case PromptShowQueue:
		pretty, _ := json.MarshalIndent(queue.URLs(), "", "  ")
		logger.Info(string(pretty), zap.Int("count", queue.Len()))
		return nil
	case PromptExport:
		return exportQueue(queue, logger)
	case PromptPersist:
		result, err := urlqueue.Persist(ctx, store, notifier, queue, logger)
		if err != nil {
			return err
		}
		if result.Warning != "" {
			logger.Warn(result.Warning)
		}
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func addQueueURL(queue *urlqueue.Queue, logger *zap.Logger) error {
	input := promptui.Prompt{Label: "URL"}

	url, err := input.Run()
	if err != nil {
		return err
	}

	if err := queue.Add(url); err != nil {
		return err
	}

	logger.Info("url queued", zap.String("url", url), zap.Int("queued", queue.Len()))
	return nil
}

func importQueueFile(queue *urlqueue.Queue, logger *zap.Logger, ingest func(string) int) error {
	input := promptui.Prompt{Label: "File path"}

	path, err := input.Run()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	added := ingest(string(data))
	logger.Info("file imported",
		zap.String("filename", path),
		zap.Int("added", added),
		zap.Int("queued", queue.Len()),
	)
	return nil
}

func removeQueueURL(queue *urlqueue.Queue, logger *zap.Logger) error {
	if queue.Len() == 0 {
		logger.Info("queue is empty")
		return nil
	}

	urlPrompt := promptui.Select{
		Label: "Choose a URL and press ENTER",
		Items: append(queue.URLs(), PromptBack),
	}

	_, selected, err := urlPrompt.Run()
	if err != nil {
		return err
	}

	if selected == PromptBack {
		return nil
	}

	queue.Remove(selected)
	logger.Info("url removed", zap.String("url", selected), zap.Int("queued", queue.Len()))
	return nil
}

func exportQueue(queue *urlqueue.Queue, logger *zap.Logger) error {
	doc, filename := queue.Export(time.Now().UTC())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger.Info("queue exported", zap.String("filename", filename), zap.Int("count", queue.Len()))
	return nil
}
