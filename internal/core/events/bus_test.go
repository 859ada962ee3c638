package events_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/frahmantamala/office-management/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var (
		bus    *events.EventBus
		logger *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
	})

	It("delivers published events to every subscriber", func() {
		var calls int32
		for i := 0; i < 3; i++ {
			bus.Subscribe(events.FileUploaded, func(ctx context.Context, e events.Event) error {
				atomic.AddInt32(&calls, 1)
				return nil
			})
		}

		err := bus.Publish(context.Background(), events.NewEvent(events.FileUploaded, map[string]interface{}{"file_id": 1}))
		Expect(err).NotTo(HaveOccurred())
		bus.Wait()

		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(3)))
	})

	It("ignores events nobody subscribed to", func() {
		err := bus.Publish(context.Background(), events.NewEvent("unknown", nil))
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps handlers running after the publishing context is cancelled", func() {
		var mu sync.Mutex
		var seenErr error
		done := make(chan struct{})
		bus.Subscribe(events.UserDeleted, func(ctx context.Context, e events.Event) error {
			mu.Lock()
			seenErr = ctx.Err()
			mu.Unlock()
			close(done)
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(bus.Publish(ctx, events.NewEvent(events.UserDeleted, nil))).To(Succeed())
		Eventually(done).Should(BeClosed())

		mu.Lock()
		defer mu.Unlock()
		Expect(seenErr).NotTo(HaveOccurred())
	})

	It("returns the first handler error from PublishSync", func() {
		bus.Subscribe(events.UserRegistered, func(ctx context.Context, e events.Event) error {
			return errors.New("boom")
		})

		err := bus.PublishSync(context.Background(), events.NewEvent(events.UserRegistered, nil))
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("assigns unique ids to new events", func() {
		a := events.NewEvent(events.FileDeleted, nil)
		b := events.NewEvent(events.FileDeleted, nil)
		Expect(a.EventID()).NotTo(Equal(b.EventID()))
		Expect(a.OccurredAt()).NotTo(BeZero())
	})

	It("audit logger accepts every office event", func() {
		events.SubscribeAudit(bus, logger)
		for _, t := range events.AllTypes {
			Expect(bus.PublishSync(context.Background(), events.NewEvent(t, map[string]interface{}{"k": "v"}))).To(Succeed())
		}
	})
})
