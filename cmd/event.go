package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Inspect the domain events",
	Long:  `List the domain event types and publish a test event through the audit subscriber.`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the event types the server publishes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.AllTypes {
			fmt.Println(t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to a local bus with the audit subscriber attached, to check log output.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishTestEvent(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var eventData string

func publishTestEvent(eventType string) error {
	known := false
	for _, t := range events.AllTypes {
		if t == eventType {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown event type %q, see `event list`", eventType)
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	event := events.NewEvent(eventType, map[string]interface{}{
		"message": eventData,
		"source":  "cli-command",
	})
	lg.Info("publishing test event", "event_type", eventType, "event_id", event.EventID())

	return bus.PublishSync(context.Background(), event)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
