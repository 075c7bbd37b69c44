package grpc

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Edwardzzz-c/gotrak/internal/manager"
	"github.com/Edwardzzz-c/gotrak/internal/pb"
	"github.com/Edwardzzz-c/gotrak/internal/tracker"
)

type server struct {
	pb.UnimplementedTrackerServiceServer
	manager    manager.Manager
	streamLock sync.Mutex
}

func (s *server) status(err error) *pb.StatusResponse {
	resp := &pb.StatusResponse{
		Running: s.manager.Running(),
		Faulted: s.manager.Faulted(),
		Healthy: s.manager.Health(),
	}
	if err != nil {
		resp.Err = err.Error()
	}
	return resp
}

// GetStatus reports whether acquisition is running and the device healthy.
func (s *server) GetStatus(ctx context.Context, req *pb.Empty) (*pb.StatusResponse, error) {
	return s.status(nil), nil
}

// SetAcquisition starts or stops the acquisition manager.
func (s *server) SetAcquisition(ctx context.Context, req *pb.AcquisitionRequest) (*pb.StatusResponse, error) {
	log.Infof("SetAcquisition: %v", req.Run)
	var err error
	if req.Run {
		err = s.manager.Start()
	} else {
		err = s.manager.Stop()
	}
	return s.status(err), nil
}

func (s *server) ListSensors(ctx context.Context, req *pb.Empty) (*pb.SensorListResponse, error) {
	ids, err := s.manager.ListDev()
	resp := &pb.SensorListResponse{Ids: make([]int32, len(ids))}
	for i, id := range ids {
		resp.Ids[i] = int32(id)
	}
	return resp, err
}

func createFrame(frame *tracker.Frame) *pb.Frame {
	if frame == nil {
		return nil
	}
	out := &pb.Frame{
		Success:    frame.Success,
		NumSensors: int32(frame.NumSensors),
		Sensors:    make([]*pb.SensorReading, len(frame.Sensors)),
		Seq:        frame.Seq,
		SysTicks:   frame.SysTicks,
	}
	for i, rec := range frame.Sensors {
		out.Sensors[i] = &pb.SensorReading{
			SensorId:   int32(rec.SensorID),
			Success:    rec.Success,
			X:          rec.X,
			Y:          rec.Y,
			Z:          rec.Z,
			Quaternion: rec.Quaternion,
		}
	}
	return out
}

// GetFrame returns the latest acquisition frame.
func (s *server) GetFrame(ctx context.Context, req *pb.FrameRequest) (*pb.FrameResponse, error) {
	if !s.manager.Running() {
		return nil, errors.New("acquisition is not running")
	}
	if s.manager.Faulted() {
		return nil, errors.New("acquisition is faulted")
	}

	_, frames, err := s.manager.Read(-1)
	if err != nil {
		return nil, err
	}
	return &pb.FrameResponse{
		Frame: createFrame(frames[0]),
		Valid: true,
	}, nil
}

// GetFrameStream pushes frames to the client as the acquisition loop
// produces them, following the manager cursor.
func (s *server) GetFrameStream(req *pb.FrameRequest, srv pb.TrackerService_GetFrameStreamServer) error {
	s.streamLock.Lock()
	defer s.streamLock.Unlock()
	lastCursor := req.Cursor

	lastSuccess := time.Now()
	for {
		if !s.manager.Running() {
			return errors.New("acquisition is not running")
		}
		if s.manager.Faulted() {
			return errors.New("acquisition is faulted")
		}
		cursor, frames, err := s.manager.Read(lastCursor)
		if err != nil {
			if time.Since(lastSuccess) > time.Second {
				return err
			}
			time.Sleep(time.Millisecond * 10)
			continue
		}
		lastSuccess = time.Now()
		lastCursor = cursor

		resp := &pb.FrameStreamResponse{
			Frames: make([]*pb.Frame, len(frames)),
			Valid:  true,
		}
		for i, frame := range frames {
			resp.Frames[i] = createFrame(frame)
		}
		if err := srv.Send(resp); err != nil {
			return err
		}
	}
}

var _ pb.TrackerServiceServer = &server{}

func NewGRPCServer(manager manager.Manager) pb.TrackerServiceServer {
	return &server{
		manager: manager,
	}
}
