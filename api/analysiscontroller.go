package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"techatlas/orchestrator"
	"techatlas/types"
)

// RegisterAnalysisRoutes registers the analysis lifecycle endpoints.
func RegisterAnalysisRoutes(r *gin.Engine, deps *Deps) {
	g := r.Group("/api/analysis")
	g.POST("", func(c *gin.Context) { handleStartAnalysis(c, deps) })
	g.GET("/status/:task_id", func(c *gin.Context) { handleAnalysisStatus(c, deps) })
	g.GET("/download/:filename", func(c *gin.Context) { handleReportDownload(c, deps) })
	g.GET("/history", func(c *gin.Context) { handleAnalysisHistory(c, deps) })
}

// handleStartAnalysis validates the request, registers a task and kicks off
// the pipeline in the background. Returns 202 Accepted immediately.
func handleStartAnalysis(c *gin.Context, deps *Deps) {
	var req types.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Comparison() && strings.EqualFold(strings.TrimSpace(req.Country), strings.TrimSpace(req.Country2)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country and country2 must differ"})
		return
	}
	if req.TimeRange < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time_range must not be negative"})
		return
	}

	task := &orchestrator.Task{
		ID:        orchestrator.NewTaskID(),
		Status:    orchestrator.TaskPending,
		Message:   "queued",
		Request:   req,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := deps.Tasks.Put(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register task"})
		return
	}

	go runAnalysisTask(deps, *task)

	c.JSON(http.StatusAccepted, gin.H{
		"task_id":          task.ID,
		"status":           task.Status,
		"check_status_url": "/api/analysis/status/" + task.ID,
	})
}

// runAnalysisTask drives the pipeline for one task, persisting progress so
// status polls see live state.
func runAnalysisTask(deps *Deps, task orchestrator.Task) {
	ctx := context.Background()

	update := func(mutate func(*orchestrator.Task)) {
		mutate(&task)
		task.UpdatedAt = time.Now()
		if err := deps.Tasks.Put(ctx, &task); err != nil {
			log.Printf("Warning: failed to persist task %s: %v", task.ID, err)
		}
	}

	update(func(t *orchestrator.Task) {
		t.Status = orchestrator.TaskRunning
		t.Message = "started"
	})

	result, err := deps.Pipeline.Run(ctx, task.Request, func(percent int, message string) {
		update(func(t *orchestrator.Task) {
			t.Progress = percent
			t.Message = message
		})
	})
	if err != nil {
		log.Printf("Analysis task %s failed: %v", task.ID, err)
		update(func(t *orchestrator.Task) {
			t.Status = orchestrator.TaskFailed
			t.Error = err.Error()
		})
		return
	}

	update(func(t *orchestrator.Task) {
		t.Status = orchestrator.TaskCompleted
		t.Progress = 100
		t.Message = "completed"
		t.Result = result
	})
}

// handleAnalysisStatus returns task state, including the result once completed.
func handleAnalysisStatus(c *gin.Context, deps *Deps) {
	id := c.Param("task_id")
	task, ok, err := deps.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "task lookup failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	resp := gin.H{
		"task_id":  task.ID,
		"status":   task.Status,
		"progress": task.Progress,
		"message":  task.Message,
	}
	if task.Error != "" {
		resp["error"] = task.Error
	}
	if task.Status == orchestrator.TaskCompleted && task.Result != nil {
		resp["results"] = task.Result
	}
	c.JSON(http.StatusOK, resp)
}

// handleAnalysisHistory lists recently completed analyses, newest first.
func handleAnalysisHistory(c *gin.Context, deps *Deps) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 50"})
			return
		}
		limit = n
	}

	tasks, err := deps.Tasks.Recent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history lookup failed"})
		return
	}

	entries := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		if task.Status != orchestrator.TaskCompleted || task.Result == nil {
			continue
		}
		entry := gin.H{
			"task_id":     task.ID,
			"countries":   task.Result.Countries,
			"domain":      task.Result.Domain,
			"confidence":  task.Result.DataQuality.Confidence,
			"analyzed_at": task.Result.AnalyzedAt,
		}
		if task.Result.Document != nil {
			entry["download_url"] = task.Result.Document.DownloadURL
		}
		entries = append(entries, entry)
	}
	c.JSON(http.StatusOK, gin.H{"history": entries, "count": len(entries)})
}

// handleReportDownload serves a stored report file by name.
func handleReportDownload(c *gin.Context, deps *Deps) {
	path, err := deps.Reports.Open(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	c.FileAttachment(path, c.Param("filename"))
}
