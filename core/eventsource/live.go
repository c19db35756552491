package eventsource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

const feedPath = "/api/case/events"

// FeedConn is a message stream from the live session feed.
type FeedConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer opens a FeedConn to rawURL.
type Dialer func(ctx context.Context, rawURL string) (FeedConn, error)

type feedOptions struct {
	baseURL string
	room    string
	dial    Dialer
}

func dialWebsocket(ctx context.Context, rawURL string) (FeedConn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// FeedURL resolves the live event endpoint for room. HTTP schemes are
// rewritten to their websocket equivalents.
func FeedURL(base, room string) (string, error) {
	feedURL, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to parse feed url: %w", err)
	}

	switch feedURL.Scheme {
	case "http", "":
		feedURL.Scheme = "ws"
	case "https":
		feedURL.Scheme = "wss"
	}
	feedURL.Path += feedPath

	query := feedURL.Query()
	query.Set("room", room)
	feedURL.RawQuery = query.Encode()
	return feedURL.String(), nil
}

func (s *Source) startLive(ctx context.Context, generation uint64) error {
	ctx, span := tracer.Start(ctx, "connect live feed")
	defer span.End()

	s.mu.Lock()
	feed := s.feed
	s.mu.Unlock()

	if feed.room == "" {
		span.SetStatus(codes.Error, ErrNoRoom.Error())
		return ErrNoRoom
	}
	span.SetAttributes(attribute.String("room", feed.room))

	feedURL, err := FeedURL(feed.baseURL, feed.room)
	if err != nil {
		span.RecordError(err)
		return err
	}

	conn, err := feed.dial(ctx, feedURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dial failed")
		return fmt.Errorf("failed to connect to live feed: %w", err)
	}

	s.mu.Lock()
	if !s.currentLocked(generation) {
		s.mu.Unlock()
		conn.Close()
		return nil
	}
	s.conn = conn
	s.mu.Unlock()

	logger.Info("live feed connected", "room", feed.room)
	go s.readFeed(generation, conn)
	return nil
}

func (s *Source) readFeed(generation uint64, conn FeedConn) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			s.feedEnded(generation, err)
			return
		}

		event, err := events.Decode(msg)
		if err != nil {
			if errors.Is(err, events.ErrUnknownKind) {
				logger.Debug("ignoring unknown live event", "error", err)
			} else {
				logger.Warn("dropping malformed live event", "error", err)
			}
			droppedPayloads.Add(context.Background(), 1)
			continue
		}

		s.fire(func() []events.Event {
			if !s.currentLocked(generation) {
				return nil
			}
			return []events.Event{event}
		})
	}
}

func (s *Source) feedEnded(generation uint64, err error) {
	s.mu.Lock()
	current := s.currentLocked(generation)
	if current {
		s.running = false
		s.conn = nil
	}
	onFeedLost := s.onFeedLost
	s.mu.Unlock()

	if !current {
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		logger.Info("live feed closed")
	} else {
		logger.Warn("live feed lost", "error", err)
	}
	if onFeedLost != nil {
		onFeedLost(err)
	}
}
