package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"boardsync/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Client talks to the task API. Most endpoints wrap their payload in a
// {"data": ...} envelope; the envelope is unwrapped here so callers only ever
// see domain values. Team and update-message responses arrive bare.
type Client struct {
	BaseURL string
	Bearer  string
	HTTP    *http.Client

	logger *log.Logger
}

// New creates a Client for the API at baseURL. An empty bearer disables the
// Authorization header.
func New(baseURL, bearer string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Bearer:  bearer,
		HTTP:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type createdRef struct {
	ID int `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusBody struct {
	Status domain.Status `json:"status"`
}

// Boards lists all boards.
func (c *Client) Boards(ctx context.Context) ([]domain.Board, error) {
	return getEnveloped[[]domain.Board](c, ctx, "boards", "/boards")
}

// BoardTasks lists all tasks belonging to one board.
func (c *Client) BoardTasks(ctx context.Context, boardID int) ([]domain.Task, error) {
	return getEnveloped[[]domain.Task](c, ctx, "board_tasks", fmt.Sprintf("/boards/%d", boardID))
}

// Users lists the full user directory.
func (c *Client) Users(ctx context.Context) ([]domain.UserFull, error) {
	return getEnveloped[[]domain.UserFull](c, ctx, "users", "/users")
}

// Tasks lists every task across all boards.
func (c *Client) Tasks(ctx context.Context) ([]domain.Task, error) {
	return getEnveloped[[]domain.Task](c, ctx, "tasks", "/tasks")
}

// Task fetches a single task by id.
func (c *Client) Task(ctx context.Context, id int) (domain.Task, error) {
	return getEnveloped[domain.Task](c, ctx, "task", fmt.Sprintf("/tasks/%d", id))
}

// UserTasks lists the tasks assigned to one user.
func (c *Client) UserTasks(ctx context.Context, userID int) ([]domain.UserTask, error) {
	return getEnveloped[[]domain.UserTask](c, ctx, "user_tasks", fmt.Sprintf("/users/%d/tasks", userID))
}

// CreateTask creates a task and returns the server-assigned id.
func (c *Client) CreateTask(ctx context.Context, in domain.CreateTaskInput) (int, error) {
	var env envelope[createdRef]
	if err := c.do(ctx, "create_task", http.MethodPost, "/tasks/create", in, &env); err != nil {
		return 0, err
	}
	return env.Data.ID, nil
}

// UpdateTask replaces every mutable field of the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, id int, in domain.UpdateTaskInput) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "update_task", http.MethodPut, fmt.Sprintf("/tasks/update/%d", id), in, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateTaskStatus changes only the status of the task with the given id.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int, status domain.Status) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, "update_task_status", http.MethodPut, fmt.Sprintf("/tasks/updateStatus/%d", id), statusBody{Status: status}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Teams lists all teams. The teams endpoints respond without the data envelope.
func (c *Client) Teams(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	if err := c.do(ctx, "teams", http.MethodGet, "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// Team fetches one team with its boards and members.
func (c *Client) Team(ctx context.Context, id int) (domain.TeamDetail, error) {
	var detail domain.TeamDetail
	if err := c.do(ctx, "team", http.MethodGet, fmt.Sprintf("/teams/%d", id), nil, &detail); err != nil {
		return domain.TeamDetail{}, err
	}
	return detail, nil
}

func getEnveloped[T any](c *Client, ctx context.Context, op, path string) (T, error) {
	var env envelope[T]
	if err := c.do(ctx, op, http.MethodGet, path, nil, &env); err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (err error) {
	metrics, spanCtx := newRequestMetrics(ctx, op, c.logger)
	defer func() { metrics.Finish(err) }()

	var rdr io.Reader
	if body != nil {
		data, merr := sonic.ConfigStd.Marshal(body)
		if merr != nil {
			err = merr
			return err
		}
		rdr = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(spanCtx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.Bearer)
	}

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	metrics.SetStatus(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err = StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(data))}
		return err
	}
	if out != nil {
		if derr := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); derr != nil {
			err = fmt.Errorf("decode %s response: %w", op, derr)
			return err
		}
	}
	return nil
}
