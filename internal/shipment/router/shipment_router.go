package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unknowncanwrite/ship/internal/checklist"
	"github.com/unknowncanwrite/ship/internal/notify"
	"github.com/unknowncanwrite/ship/internal/shipment/model"
	"github.com/unknowncanwrite/ship/internal/shipment/service"
	"github.com/unknowncanwrite/ship/internal/uploads"
	"github.com/unknowncanwrite/ship/utils"
)

var errTaskNotInPlan = errors.New("task not in the shipment's plan")

type ShipmentRouter struct {
	shipments      service.ShipmentStore
	progress       *service.ProgressService
	documents      *service.DocumentService
	maxUploadBytes int64
}

func NewShipmentRouter(shipments service.ShipmentStore, progress *service.ProgressService, documents *service.DocumentService, maxUploadBytes int64) *ShipmentRouter {
	return &ShipmentRouter{
		shipments:      shipments,
		progress:       progress,
		documents:      documents,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register mounts the /api/shipments routes on group.
func (sr *ShipmentRouter) Register(group *gin.RouterGroup) {
	group.GET("", sr.HandleListShipments)
	group.POST("", sr.HandleCreateShipment)
	group.GET("/:id", sr.HandleGetShipment)
	group.PATCH("/:id", sr.HandlePatchShipment)
	group.DELETE("/:id", sr.HandleDeleteShipment)

	group.GET("/:id/audit-logs", sr.HandleGetAuditLogs)
	group.GET("/:id/reconciliation", sr.HandleGetReconciliation)

	group.GET("/:id/progress", sr.HandleGetProgress)
	group.PUT("/:id/checklist/:taskId", sr.HandleSetTaskState)
	group.GET("/:id/tasks/:taskId/message", sr.HandleGetTaskMessage)

	group.POST("/:id/custom-tasks", sr.HandleAddCustomTask)
	group.PATCH("/:id/custom-tasks/:taskId", sr.HandleToggleCustomTask)
	group.DELETE("/:id/custom-tasks/:taskId", sr.HandleDeleteCustomTask)

	group.POST("/:id/todos", sr.HandleAddTodo)
	group.PATCH("/:id/todos/:itemId", sr.HandleToggleTodo)
	group.DELETE("/:id/todos/:itemId", sr.HandleDeleteTodo)

	group.POST("/:id/documents", sr.HandleAttachDocument)
	group.DELETE("/:id/documents/:docId", sr.HandleDetachDocument)
}

// HandleListShipments handles GET /api/shipments?offset={offset}&limit={limit}
// Without either parameter every shipment is returned.
func (sr *ShipmentRouter) HandleListShipments(c *gin.Context) {
	if c.Query("offset") == "" && c.Query("limit") == "" {
		shipments, err := sr.shipments.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, model.ShipmentListResult{
			TotalCount: int64(len(shipments)),
			Shipments:  shipments,
			Limit:      len(shipments),
		})
		return
	}

	offset, limit, err := utils.ParsePagination(c.Query("offset"), c.Query("limit"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	shipments, total, err := sr.shipments.ListPage(c.Request.Context(), offset, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ShipmentListResult{
		TotalCount: total,
		Shipments:  shipments,
		Offset:     offset,
		Limit:      limit,
	})
}

// HandleCreateShipment handles POST /api/shipments
// Request body: CreateShipmentRequest
func (sr *ShipmentRouter) HandleCreateShipment(c *gin.Context) {
	var req model.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := model.ValidateCreateShipmentRequest(req); err != nil {
		writeError(c, err)
		return
	}

	shipment := req.NewShipment()
	if err := sr.shipments.Create(c.Request.Context(), shipment); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

func (sr *ShipmentRouter) HandleGetShipment(c *gin.Context) {
	shipment, err := sr.shipments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

// HandlePatchShipment handles PATCH /api/shipments/{id}
// Request body: ShipmentPatch; checklist entries merge key by key.
func (sr *ShipmentRouter) HandlePatchShipment(c *gin.Context) {
	var patch model.ShipmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if err := model.ValidateShipmentPatch(patch); err != nil {
		writeError(c, err)
		return
	}

	shipment, err := sr.shipments.Patch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

func (sr *ShipmentRouter) HandleDeleteShipment(c *gin.Context) {
	if err := sr.shipments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (sr *ShipmentRouter) HandleGetAuditLogs(c *gin.Context) {
	logs, err := sr.shipments.ListAuditLogs(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (sr *ShipmentRouter) HandleGetReconciliation(c *gin.Context) {
	shipment, err := sr.shipments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.Reconcile(shipment.Commercial, shipment.Actual))
}

func (sr *ShipmentRouter) HandleGetProgress(c *gin.Context) {
	view, err := sr.progress.Progress(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type setTaskStateRequest struct {
	Value *checklist.Value `json:"value"`
}

// HandleSetTaskState handles PUT /api/shipments/{id}/checklist/{taskId}
// Request body: {"value": true|false|"remark text"}
func (sr *ShipmentRouter) HandleSetTaskState(c *gin.Context) {
	var req setTaskStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Value == nil {
		badRequest(c, "value is required")
		return
	}

	view, err := sr.progress.SetTaskState(c.Request.Context(), c.Param("id"), c.Param("taskId"), *req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleGetTaskMessage handles GET /api/shipments/{id}/tasks/{taskId}/message
func (sr *ShipmentRouter) HandleGetTaskMessage(c *gin.Context) {
	_, plan, err := sr.progress.Plan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	task, ok := plan.Task(c.Param("taskId"))
	if !ok {
		writeError(c, fmt.Errorf("%w: %s", errTaskNotInPlan, c.Param("taskId")))
		return
	}

	msg, err := notify.Render(task)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

type textRequest struct {
	Text string `json:"text"`
}

func (sr *ShipmentRouter) HandleAddCustomTask(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	task, err := sr.progress.AddCustomTask(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (sr *ShipmentRouter) HandleToggleCustomTask(c *gin.Context) {
	task, err := sr.progress.ToggleCustomTask(c.Request.Context(), c.Param("id"), c.Param("taskId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (sr *ShipmentRouter) HandleDeleteCustomTask(c *gin.Context) {
	if err := sr.progress.DeleteCustomTask(c.Request.Context(), c.Param("id"), c.Param("taskId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (sr *ShipmentRouter) HandleAddTodo(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	item, err := sr.progress.AddChecklistItem(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (sr *ShipmentRouter) HandleToggleTodo(c *gin.Context) {
	item, err := sr.progress.ToggleChecklistItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (sr *ShipmentRouter) HandleDeleteTodo(c *gin.Context) {
	if err := sr.progress.DeleteChecklistItem(c.Request.Context(), c.Param("id"), c.Param("itemId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleAttachDocument handles POST /api/shipments/{id}/documents
// Body: multipart "file" field, or JSON {fileName, mimeType, fileContent(base64)}.
func (sr *ShipmentRouter) HandleAttachDocument(c *gin.Context) {
	name, mimeType, content, err := uploads.ReadUpload(c, sr.maxUploadBytes)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	doc, err := sr.documents.Attach(c.Request.Context(), c.Param("id"), name, mimeType, content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (sr *ShipmentRouter) HandleDetachDocument(c *gin.Context) {
	if err := sr.documents.Detach(c.Request.Context(), c.Param("id"), c.Param("docId")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
