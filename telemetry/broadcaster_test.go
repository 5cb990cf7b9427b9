package telemetry_test

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := telemetry.NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, time.Millisecond)

	b.Publish(telemetry.TraceEvent{Kind: telemetry.TraceBlockStart, Message: "block 0", Tasks: 4})

	select {
	case ev := <-sub:
		assert.Equal(t, telemetry.TraceBlockStart, ev.Kind)
		assert.Equal(t, "block 0", ev.Message)
		assert.Equal(t, 4, ev.Tasks)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := telemetry.NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe()
	b.Unsubscribe(sub)

	require.Eventually(t, func() bool {
		_, open := <-sub
		return !open
	}, time.Second, time.Millisecond)
}

func TestPublishWithNoSubscribersDoesNotBlock(t *testing.T) {
	b := telemetry.NewBroadcaster()
	defer b.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(telemetry.TraceEvent{Kind: telemetry.TraceMerge})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked with no subscribers")
	}
}

func TestCloseClosesAllSubscriptions(t *testing.T) {
	b := telemetry.NewBroadcaster()
	sub1 := b.Subscribe()
	sub2 := b.Subscribe()

	b.Close()

	require.Eventually(t, func() bool {
		_, open1 := <-sub1
		_, open2 := <-sub2
		return !open1 && !open2
	}, time.Second, time.Millisecond)
}

func TestSlowSubscriberDropsRatherThanBlocks(t *testing.T) {
	b := telemetry.NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe() // buffered 64, never drained here
	defer b.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			b.Publish(telemetry.TraceEvent{Kind: telemetry.TraceBlockDone})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcaster blocked on a slow subscriber")
	}
}

func TestLogSinkWritesEventLines(t *testing.T) {
	b := telemetry.NewBroadcaster()
	defer b.Close()

	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	stop := telemetry.LogSink(b, logger)

	b.Publish(telemetry.TraceEvent{Kind: telemetry.TraceBlockStart, Tasks: 2, BlockSize: 64})
	require.Eventually(t, func() bool {
		return bytes.Contains(buf.Bytes(), []byte("block_start"))
	}, time.Second, time.Millisecond)

	stop()
}
