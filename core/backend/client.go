// Package backend talks to the session service: joining a voice session and
// forwarding the player's case actions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Mohammad-Palla/sherlock-game/core/events"
)

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected response status")

const (
	joinPath   = "/api/livekit/join"
	actionPath = "/api/case/action"
)

// JoinResponse describes the joined voice session.
type JoinResponse struct {
	Token    string             `json:"token"`
	URL      string             `json:"url"`
	RoomName string             `json:"roomName"`
	Identity string             `json:"identity"`
	Agents   []events.AgentInfo `json:"agents"`
}

// MockJoinResponse is the session used when no backend is reachable.
func MockJoinResponse() JoinResponse {
	return JoinResponse{
		Token:    "mock-token",
		URL:      "wss://mock.livekit.server",
		RoomName: "Mock Room",
		Identity: "detective-ui",
		Agents: []events.AgentInfo{
			{ID: "sherlock", Name: "Sherlock Holmes", Role: "Detective"},
			{ID: "watson", Name: "Dr. Watson", Role: "Companion"},
			{ID: "moriarty", Name: "Professor Moriarty", Role: "Antagonist"},
		},
	}
}

type ActionKind string

const (
	ActionChooseClue        ActionKind = "CHOOSE_CLUE"
	ActionDeduction         ActionKind = "DEDUCTION"
	ActionRequestWatsonHint ActionKind = "REQUEST_WATSON_HINT"
)

// Action is a player decision sent to the live case.
type Action struct {
	Action ActionKind             `json:"action"`
	Choice *events.ClueChoice     `json:"choice,omitempty"`
	Guess  *events.DeductionGuess `json:"guess,omitempty"`
	Room   string                 `json:"room,omitempty"`
}

func ChooseClue(choice events.ClueChoice) Action {
	return Action{Action: ActionChooseClue, Choice: &choice}
}

func Deduce(guess events.DeductionGuess) Action {
	return Action{Action: ActionDeduction, Guess: &guess}
}

func RequestWatsonHint() Action {
	return Action{Action: ActionRequestWatsonHint}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
				return "backend " + request.Method + " " + request.URL.Path
			}),
		)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Join requests a voice session.
func (c *Client) Join(ctx context.Context) (JoinResponse, error) {
	ctx, span := tracer.Start(ctx, "join session")
	defer span.End()

	var response JoinResponse
	if err := c.post(ctx, joinPath, nil, &response); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "join failed")
		return JoinResponse{}, fmt.Errorf("failed to join session: %w", err)
	}

	span.SetAttributes(
		attribute.String("room", response.RoomName),
		attribute.Int("agents", len(response.Agents)),
	)
	return response, nil
}

// SendAction forwards a player decision for room.
func (c *Client) SendAction(ctx context.Context, room string, action Action) error {
	ctx, span := tracer.Start(ctx, "send case action")
	defer span.End()
	span.SetAttributes(attribute.String("action", string(action.Action)), attribute.String("room", room))

	action.Room = room
	if err := c.post(ctx, actionPath, action, nil); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "action failed")
		return fmt.Errorf("failed to send %s: %w", action.Action, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Debug("backend rejected request", "path", path, "status", resp.StatusCode, "body", string(errorBody))
		return fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
