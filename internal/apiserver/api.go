// Package apiserver exposes the tracker over plain HTTP for tooling that
// does not speak gRPC. Responses reuse the record field names of the
// tracker package.
package apiserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Edwardzzz-c/gotrak/internal/config"
	"github.com/Edwardzzz-c/gotrak/internal/manager"
	"github.com/Edwardzzz-c/gotrak/internal/tracker"
)

type Server struct {
	m   manager.Manager
	opt *config.TrackerOpt
}

func New(m manager.Manager, opt *config.TrackerOpt) *Server {
	return &Server{m: m, opt: opt}
}

func (s *Server) Router() *gin.Engine {
	if !s.opt.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.GET("/sensors", s.handleSensors)
	r.GET("/sensors/:id/attached", s.handleSensorAttached)
	r.GET("/sensors/:id/quaternion", s.handleQuaternion)
	r.GET("/sensors/:id/angles", s.handleAngles)
	r.GET("/sensors/:id/matrix", s.handleMatrix)
	r.GET("/transmitter", s.handleTransmitter)
	r.GET("/frames/latest", s.handleLatestFrame)
	r.POST("/device/rate", s.handleSetRate)
	r.POST("/device/range", s.handleSetRange)
	r.POST("/sensors/:id/hemisphere", s.handleSetHemisphere)
	r.POST("/sensors/:id/mode", s.handleSetMode)

	return r
}

func (s *Server) Run() error {
	return s.Router().Run(s.opt.API.Interface + ":" + strconv.Itoa(s.opt.API.Port))
}

func sensorID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid sensor id"})
		return 0, false
	}
	return id, true
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"healthy": s.m.Health(),
		"running": s.m.Running(),
		"faulted": s.m.Faulted(),
	})
}

func (s *Server) handleSensors(c *gin.Context) {
	ids, err := s.m.ListDev()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"num_sensors": len(ids),
		"ids":         ids,
	})
}

func (s *Server) handleSensorAttached(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	attached, err := s.m.SensorAttached(id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sensor_id": id, "attached": attached})
}

func (s *Server) handleTransmitter(c *gin.Context) {
	attached, err := s.m.TransmitterAttached()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attached": attached})
}

func (s *Server) handleQuaternion(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	rec, err := s.m.ReadQuaternion(id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleAngles(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	rec, err := s.m.ReadAngles(id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleMatrix(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	rec, err := s.m.ReadMatrix(id)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleLatestFrame(c *gin.Context) {
	_, frames, err := s.m.Read(-1)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, frames[0])
}

func (s *Server) handleSetRate(c *gin.Context) {
	req := struct {
		Rate float64 `json:"rate"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	status, err := s.m.SetRate(req.Rate)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) handleSetRange(c *gin.Context) {
	req := struct {
		Range72 bool `json:"range72"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	status, err := s.m.SetRange(req.Range72)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) handleSetHemisphere(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	req := struct {
		Rear bool `json:"rear"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	status, err := s.m.SetHemisphere(id, req.Rear)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) handleSetMode(c *gin.Context) {
	id, ok := sensorID(c)
	if !ok {
		return
	}
	req := struct {
		Mode string `json:"mode"`
	}{}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	switch tracker.OutputMode(req.Mode) {
	case tracker.ModeQuaternion, tracker.ModeAngles, tracker.ModeMatrix:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"err": "unknown mode: " + req.Mode})
		return
	}
	status, err := s.m.SetMode(id, tracker.OutputMode(req.Mode))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
