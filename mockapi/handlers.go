package mockapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"boardsync/domain"
)

var (
	errBoardNotFound = errors.New("board not found")
	errUserNotFound  = errors.New("user not found")
	errTaskNotFound  = errors.New("task not found")
)

const requestBodyMaxSize = 1 << 20

// envelope is the {"data": ...} wrapper used by most endpoints. Team
// endpoints and mutation acknowledgements respond with bare payloads.
type envelope struct {
	Data any `json:"data"`
}

type createdResponse struct {
	ID int `json:"id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, ds *Dataset, auth Authenticator, logger *log.Logger) {
	g := e.Group("/api/v1", requireAuth(auth))
	g.GET("/boards", getBoards(ds))
	g.GET("/boards/:boardId", getBoardTasks(ds))
	g.GET("/users", getUsers(ds))
	g.GET("/users/:userId/tasks", getUserTasks(ds))
	g.GET("/tasks", getTasks(ds))
	g.GET("/tasks/:taskId", getTask(ds))
	g.POST("/tasks/create", postCreateTask(ds, logger))
	g.PUT("/tasks/update/:taskId", putUpdateTask(ds, logger))
	g.PUT("/tasks/updateStatus/:taskId", putUpdateTaskStatus(ds, logger))
	g.GET("/teams", getTeams(ds))
	g.GET("/teams/:teamId", getTeam(ds))

	e.GET("/healthz", healthz)
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func requireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization)); err != nil {
				return c.String(http.StatusUnauthorized, err.Error())
			}
			return next(c)
		}
	}
}

func intParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

func getBoards(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{Data: ds.Boards()})
	}
}

func getBoardTasks(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "boardId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid board id")
		}
		tasks, ok := ds.BoardTasks(id)
		if !ok {
			return c.String(http.StatusNotFound, errBoardNotFound.Error())
		}
		return c.JSON(http.StatusOK, envelope{Data: tasks})
	}
}

func getUsers(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{Data: ds.Users()})
	}
}

func getUserTasks(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "userId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid user id")
		}
		tasks, ok := ds.UserTasks(id)
		if !ok {
			return c.String(http.StatusNotFound, errUserNotFound.Error())
		}
		return c.JSON(http.StatusOK, envelope{Data: tasks})
	}
}

func getTasks(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, envelope{Data: ds.Tasks()})
	}
}

func getTask(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "taskId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid task id")
		}
		task, ok := ds.Task(id)
		if !ok {
			return c.String(http.StatusNotFound, errTaskNotFound.Error())
		}
		return c.JSON(http.StatusOK, envelope{Data: task})
	}
}

func decodeBody(c echo.Context, out any) error {
	lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func postCreateTask(ds *Dataset, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in domain.CreateTaskInput
		if err := decodeBody(c, &in); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if in.Title == "" {
			return c.String(http.StatusBadRequest, "title is required")
		}
		if !in.Priority.Valid() {
			return c.String(http.StatusBadRequest, "invalid priority")
		}
		id, err := ds.CreateTask(in)
		if err != nil {
			return c.String(http.StatusNotFound, err.Error())
		}
		logger.WithFields(log.Fields{"task_id": id, "board_id": in.BoardID}).Info("task created")
		return c.JSON(http.StatusCreated, envelope{Data: createdResponse{ID: id}})
	}
}

func putUpdateTask(ds *Dataset, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "taskId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid task id")
		}
		var in domain.UpdateTaskInput
		if err := decodeBody(c, &in); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if in.Title == "" {
			return c.String(http.StatusBadRequest, "title is required")
		}
		if !in.Priority.Valid() {
			return c.String(http.StatusBadRequest, "invalid priority")
		}
		if !in.Status.Valid() {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		if err := ds.UpdateTask(id, in); err != nil {
			return c.String(http.StatusNotFound, err.Error())
		}
		logger.WithField("task_id", id).Info("task updated")
		return c.JSON(http.StatusOK, messageResponse{Message: "task updated"})
	}
}

func putUpdateTaskStatus(ds *Dataset, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "taskId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid task id")
		}
		var in statusRequest
		if err := decodeBody(c, &in); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if !in.Status.Valid() {
			return c.String(http.StatusBadRequest, "invalid status")
		}
		if err := ds.UpdateTaskStatus(id, in.Status); err != nil {
			return c.String(http.StatusNotFound, err.Error())
		}
		logger.WithFields(log.Fields{"task_id": id, "status": in.Status}).Info("task status updated")
		return c.JSON(http.StatusOK, messageResponse{Message: "task status updated"})
	}
}

func getTeams(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, ds.Teams())
	}
}

func getTeam(ds *Dataset) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := intParam(c, "teamId")
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid team id")
		}
		team, ok := ds.Team(id)
		if !ok {
			return c.String(http.StatusNotFound, "team not found")
		}
		return c.JSON(http.StatusOK, team)
	}
}
