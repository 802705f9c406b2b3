package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishDeliversToSubscriber(t *testing.T) {
	hub := NewHub(2)
	ch, unsubscribe := hub.Subscribe("user-1")
	defer unsubscribe()

	hub.Publish("user-1", Frame{Type: TypeAlgorithmProgress, Data: map[string]any{"percent": 10}})

	frame := <-ch
	assert.Equal(t, TypeAlgorithmProgress, frame.Type)
}

func TestHubPublishWithoutSubscriberStillRecordsLastFrame(t *testing.T) {
	hub := NewHub(2)
	hub.Publish("user-2", Frame{Type: TypeAlgorithmComplete})

	frame, ok := hub.LastFrame("user-2")
	require.True(t, ok)
	assert.Equal(t, TypeAlgorithmComplete, frame.Type)
}

func TestHubLastFrameMissingUser(t *testing.T) {
	hub := NewHub(2)
	_, ok := hub.LastFrame("nobody")
	assert.False(t, ok)
}

func TestHubSubscribeReplacesPriorSubscription(t *testing.T) {
	hub := NewHub(2)
	_, unsubFirst := hub.Subscribe("user-3")
	defer unsubFirst()
	second, unsubSecond := hub.Subscribe("user-3")
	defer unsubSecond()

	hub.Publish("user-3", Frame{Type: TypePong})

	frame := <-second
	assert.Equal(t, TypePong, frame.Type)
}

func TestHubPublishDropsWhenSubscriberBufferFull(t *testing.T) {
	hub := NewHub(1)
	ch, unsubscribe := hub.Subscribe("user-4")
	defer unsubscribe()

	hub.Publish("user-4", Frame{Type: TypePong})
	hub.Publish("user-4", Frame{Type: TypeError}) // buffer full, subscriber torn down

	<-ch
	_, stillOpen := <-ch
	assert.False(t, stillOpen)
}

func TestHandleClientFramePing(t *testing.T) {
	hub := NewHub(2)
	out := hub.HandleClientFrame("user-5", ClientFrame{Type: ClientTypePing})
	assert.Equal(t, TypePong, out.Type)
}

func TestHandleClientFrameGetProgressNoHistory(t *testing.T) {
	hub := NewHub(2)
	out := hub.HandleClientFrame("user-6", ClientFrame{Type: ClientTypeGetProgress})
	assert.Equal(t, TypeSubscriptionConfirmed, out.Type)
}

func TestHandleClientFrameGetProgressReturnsLastFrame(t *testing.T) {
	hub := NewHub(2)
	hub.Publish("user-7", Frame{Type: TypeAlgorithmProgress})
	out := hub.HandleClientFrame("user-7", ClientFrame{Type: ClientTypeGetProgress})
	assert.Equal(t, TypeAlgorithmProgress, out.Type)
}

func TestHandleClientFrameSubscribeAlgorithm(t *testing.T) {
	hub := NewHub(2)
	out := hub.HandleClientFrame("user-8", ClientFrame{Type: ClientTypeSubscribeAlgorithm, Tag: "greedy"})
	assert.Equal(t, TypeSubscriptionConfirmed, out.Type)
	assert.Equal(t, "greedy", out.Message)
}

func TestHandleClientFrameUnrecognizedType(t *testing.T) {
	hub := NewHub(2)
	out := hub.HandleClientFrame("user-9", ClientFrame{Type: "nonsense"})
	assert.Equal(t, TypeError, out.Type)
}
