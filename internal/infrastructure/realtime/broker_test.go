package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

type broker interface {
	ports.EventPublisher
	ports.EventSubscriber
}

func receive(t *testing.T, ch <-chan entity.ChangeEvent) entity.ChangeEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("evento no recibido")
		return entity.ChangeEvent{}
	}
}

func assertSilent(t *testing.T, ch <-chan entity.ChangeEvent) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("evento inesperado: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func exerciseBroker(t *testing.T, b broker) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	u1, err := b.Subscribe(ctx, "u1")
	require.NoError(t, err)
	u2, err := b.Subscribe(ctx, "u2")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, entity.ChangeEvent{Table: "tasks", Action: entity.ChangeInsert, ID: "t1", UserID: "u1"}))
	ev := receive(t, u1)
	assert.Equal(t, "tasks", ev.Table)
	assert.Equal(t, "t1", ev.ID)
	assertSilent(t, u2)

	require.NoError(t, b.Publish(ctx, entity.ChangeEvent{Table: "accessories", Action: entity.ChangeUpdate, ID: "a1"}))
	assert.Equal(t, "a1", receive(t, u1).ID)
	assert.Equal(t, "a1", receive(t, u2).ID)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-u1:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "el canal se cierra al cancelar")
}

func TestMemoryBroker(t *testing.T) {
	exerciseBroker(t, NewMemoryBroker(nil))
}

func TestRedisBroker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	exerciseBroker(t, NewRedisBroker(client, nil))
}
