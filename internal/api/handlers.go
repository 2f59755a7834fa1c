package api

import (
	"errors"
	"net/http"

	"github.com/annel0/mmo-globe/internal/globe"
	"github.com/gin-gonic/gin"
)

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PointQuery параметры точки в query-строке; z необязателен
type PointQuery struct {
	Root *uint8  `form:"root" binding:"required"`
	X    *uint64 `form:"x" binding:"required"`
	Y    *uint64 `form:"y" binding:"required"`
	Z    uint64  `form:"z"`
}

func (q PointQuery) point() globe.GridPoint3 {
	return globe.NewGridPoint3(globe.Root(*q.Root), globe.GridCoord(*q.X), globe.GridCoord(*q.Y), globe.GridCoord(q.Z))
}

// ClassifyResponse ответ классификатора
type ClassifyResponse struct {
	Point  globe.GridPoint3 `json:"point"`
	Region string           `json:"region"`
}

// EquivalentsResponse класс эквивалентности в каноническом порядке
type EquivalentsResponse struct {
	Point     globe.GridPoint3   `json:"point"`
	Region    string             `json:"region"`
	Count     int                `json:"count"`
	Canonical globe.GridPoint3   `json:"canonical"`
	Points    []globe.GridPoint3 `json:"points"`
}

// CellResponse клетка в точке
type CellResponse struct {
	Point globe.GridPoint2 `json:"point"`
	Cell  globe.Cell       `json:"cell"`
}

// bindPoint разбирает и проверяет точку. При ошибке ответ уже отправлен.
func (rs *RestServer) bindPoint(c *gin.Context) (globe.GridPoint3, bool) {
	var q PointQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: "Неверные параметры точки: требуются root, x, y",
		})
		return globe.GridPoint3{}, false
	}

	p := q.point()
	if err := globe.CheckBounds(p, rs.globe.Resolution()); err != nil {
		rs.resolver.Reject()
		c.JSON(http.StatusBadRequest, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return globe.GridPoint3{}, false
	}
	return p, true
}

// handleHealth проверка доступности
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleSpec возвращает параметры глобуса
func (rs *RestServer) handleSpec(c *gin.Context) {
	spec := rs.globe.Spec()
	c.JSON(http.StatusOK, gin.H{
		"spec":            spec,
		"root_count":      globe.RootCount,
		"root_resolution": rs.globe.Resolution(),
		"chunk_count":     spec.ChunkCount(),
	})
}

// handleClassify возвращает регион точки
func (rs *RestServer) handleClassify(c *gin.Context) {
	p, ok := rs.bindPoint(c)
	if !ok {
		return
	}

	region := globe.Classify(p, rs.globe.Resolution())
	rs.resolver.Observe(region)
	c.JSON(http.StatusOK, ClassifyResponse{Point: p, Region: region.String()})
}

// handleEquivalents возвращает все представления точки
func (rs *RestServer) handleEquivalents(c *gin.Context) {
	p, ok := rs.bindPoint(c)
	if !ok {
		return
	}

	res := rs.globe.Resolution()
	points := globe.Collect(p, res)
	region := globe.Classify(p, res)
	rs.resolver.Observe(region)

	c.JSON(http.StatusOK, EquivalentsResponse{
		Point:     p,
		Region:    region.String(),
		Count:     len(points),
		Canonical: points[0],
		Points:    points,
	})
}

// handleCell возвращает клетку в точке, даже если ее чанк лежит на соседней панели
func (rs *RestServer) handleCell(c *gin.Context) {
	p, ok := rs.bindPoint(c)
	if !ok {
		return
	}

	cell, err := rs.globe.CellAt(p.Point2())
	if errors.Is(err, globe.ErrChunkNotLoaded) {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if err != nil {
		rs.logger.Error("Ошибка чтения клетки %s: %v", p, err)
		c.JSON(http.StatusInternalServerError, GenericResponse{
			Success: false,
			Message: "Внутренняя ошибка сервера",
		})
		return
	}

	c.JSON(http.StatusOK, CellResponse{Point: p.Point2(), Cell: cell})
}

// handleChunks возвращает сводку по построенным чанкам
func (rs *RestServer) handleChunks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"built":           rs.globe.ChunkCount(),
		"total":           rs.globe.Spec().ChunkCount(),
		"seam_mismatches": rs.globe.SeamMismatches(),
	})
}

// handleStats возвращает статистику процесса
func (rs *RestServer) handleStats(c *gin.Context) {
	stats := gin.H{
		"uptime":     rs.metrics.GetUptime(),
		"memory_mb":  rs.metrics.GetMemoryUsage(),
		"chunks":     rs.globe.ChunkCount(),
		"started_at": rs.metrics.StartTime,
	}
	if cpu, err := rs.metrics.GetCPUUsage(); err == nil {
		stats["cpu_percent"] = cpu
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика сервера",
		Data:    stats,
	})
}
