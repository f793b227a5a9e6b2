package net

import (
	"context"
	"image/color"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + Path
}

func follow(ctx context.Context, url string) (<-chan state.Op, <-chan error) {
	ops := make(chan state.Op, 16)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, url, func(op state.Op) { ops <- op })
	}()
	return ops, done
}

func recv(t *testing.T, ops <-chan state.Op) state.Op {
	t.Helper()
	select {
	case op := <-ops:
		return op
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for op")
		return state.Op{}
	}
}

func TestHub_ViewerMirrorsHost(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	host := state.NewCollection(quadtree.Rect{W: 100, H: 100}, 4)
	host.OnLocalOp = hub.Broadcast

	style := stroke.Style{Color: color.NRGBA{A: 255}, Width: 2}
	early := stroke.FromPoints(style, []stroke.Point{{X: 1, Y: 1}})
	host.AddStroke(early)

	ctx, cancel := context.WithCancel(context.Background())
	ops, done := follow(ctx, wsURL(srv))

	viewer := state.NewCollection(quadtree.Rect{W: 100, H: 100}, 4)
	op := recv(t, ops)
	assert.Equal(t, state.OpInsertStroke, op.Type)
	assert.Equal(t, early.ID, op.Stroke.ID)
	viewer.ApplyRemote(op)

	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	late := stroke.FromPoints(style, []stroke.Point{{X: 5, Y: 5}, {X: 6, Y: 6}})
	host.AddStroke(late)
	host.RemoveStroke(early)

	viewer.ApplyRemote(recv(t, ops))
	viewer.ApplyRemote(recv(t, ops))
	require.Len(t, viewer.Strokes(), 1)
	assert.Equal(t, late.ID, viewer.Strokes()[0].ID)
	assert.Equal(t, late.Points, viewer.Strokes()[0].Points)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestHub_CloseDisconnectsViewers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	_, done := follow(context.Background(), wsURL(srv))
	require.Eventually(t, func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Len())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Follow did not return after hub closed")
	}
}

func TestFollow_DialError(t *testing.T) {
	err := Follow(context.Background(), "ws://127.0.0.1:1/ws", func(state.Op) {})
	assert.Error(t, err)
}

func TestEntryAddr(t *testing.T) {
	_, ok := entryAddr(nil)
	assert.False(t, ok)
	_, ok = entryAddr(&mdns.ServiceEntry{Port: 8888})
	assert.False(t, ok)
}

func TestGetOutgoingIP(t *testing.T) {
	ip, err := GetOutgoingIP()
	require.NoError(t, err)
	assert.NotEmpty(t, ip)
}

func TestDialURL(t *testing.T) {
	u, err := DialURL(ShareLink("192.168.1.4", 8888) + "/")
	require.NoError(t, err)
	assert.Equal(t, "ws://192.168.1.4:8888/ws", u)

	u, err = DialURL("localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:9000/ws", u)

	_, err = DialURL("vectorboard://nohost")
	assert.Error(t, err)
}
