// Package trakstar manages one tracker session. A single acquisition
// goroutine owns the device; everything else reaches it through serialized
// manager calls, since neither the vendor driver nor the session tolerate
// concurrent access.
package trakstar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Edwardzzz-c/gotrak/internal/config"
	"github.com/Edwardzzz-c/gotrak/internal/manager"
	"github.com/Edwardzzz-c/gotrak/internal/tracker"
	"github.com/Edwardzzz-c/gotrak/internal/tracker/sim"
)

const BufLen = 1024

const autoSleepDurationSecond = 60

// consecutive all-sensors failures before the manager declares a fault
const faultThreshold = 25

var errNotRunning = errors.New("manager is not running")
var errFaulted = errors.New("manager is faulted")

type trakstarManager struct {
	opt              *config.TrackerOpt
	driverFactory    func() (tracker.Driver, error)
	session          *tracker.Session
	ringBuffer       []*tracker.Frame
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	lock             sync.RWMutex
	counter          int64
	manuallyStopped  bool
	faulted          bool
	lastAccessSecond atomic.Int64
}

func NewManager(opt *config.TrackerOpt) manager.Manager {
	m := &trakstarManager{
		opt:        opt,
		ringBuffer: make([]*tracker.Frame, BufLen),
	}
	m.touch()
	return m
}

// newDriver builds the configured driver. Only the simulator lives in this
// repository; hardware-backed drivers plug in as tracker.Driver
// implementations from their own packages, or through driverFactory.
func (m *trakstarManager) newDriver() (tracker.Driver, error) {
	if m.driverFactory != nil {
		return m.driverFactory()
	}
	switch m.opt.Device.Driver {
	case "", "sim":
		return sim.NewDriver(sim.Opt{NumSensors: m.opt.Device.SimSensors}), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", m.opt.Device.Driver)
	}
}

func (m *trakstarManager) applyDeviceConfig(s *tracker.Session) {
	if st := s.SetMeasurementRate(m.opt.Device.Rate); st != 0 {
		log.Warnf("set measurement rate %v: status %d", m.opt.Device.Rate, st)
	}
	if st := s.SetMaximumRange(m.opt.Device.Range72); st != 0 {
		log.Warnf("set maximum range (range72=%v): status %d", m.opt.Device.Range72, st)
	}
	for _, so := range m.opt.Device.Sensors {
		if st := s.SetSensorHemisphere(so.ID, so.HemisphereRear); st != 0 {
			log.Warnf("sensor %d: set hemisphere: status %d", so.ID, st)
		}
		if st := s.SetSensorMode(so.ID, tracker.OutputMode(so.Mode)); st != 0 {
			log.Warnf("sensor %d: set mode %s: status %d", so.ID, so.Mode, st)
		}
	}
}

// Start brings up the driver, applies the device configuration from the
// options and launches the acquisition goroutine.
func (m *trakstarManager) Start() error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.touch()

	if m.session == nil {
		drv, err := m.newDriver()
		if err != nil {
			return err
		}
		session := tracker.NewSession(drv)
		if !session.Ok() {
			_ = session.Close()
			return errors.New("tracker device failed to initialize")
		}
		m.applyDeviceConfig(session)

		m.session = session
		m.ctx, m.cancel = context.WithCancel(context.Background())
		m.faulted = false
		m.wg.Add(1)
		go m.acquire(m.ctx, session)
		log.Infof("manager started, %d sensors", session.NumberOfSensors())
	}
	m.manuallyStopped = false
	return nil
}

// Stop cancels acquisition and closes the session. The lock is released
// while waiting for the acquisition goroutine, which takes it per tick.
func (m *trakstarManager) Stop() error {
	m.lock.Lock()
	m.touch()
	if m.session == nil {
		m.manuallyStopped = true
		m.lock.Unlock()
		return nil
	}
	cancel := m.cancel
	m.lock.Unlock()

	cancel()
	m.wg.Wait()

	m.lock.Lock()
	defer m.lock.Unlock()
	err := m.session.Close()
	m.session = nil
	m.manuallyStopped = true
	m.counter = 0
	m.ringBuffer = make([]*tracker.Frame, BufLen)
	log.Infof("manager stopped")
	return err
}

func (m *trakstarManager) Restart() error {
	if err := m.Stop(); err != nil {
		return err
	}
	return m.Start()
}

func (m *trakstarManager) acquire(ctx context.Context, s *tracker.Session) {
	defer m.wg.Done()

	rate := m.opt.Device.Rate
	if rate <= 0 {
		rate = config.DefaultMeasurementRate
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m.lock.Lock()
		if ctx.Err() != nil {
			m.lock.Unlock()
			return
		}
		rec := s.GetAllSensorsData()
		m.ringBuffer[m.counter%BufLen] = &tracker.Frame{
			AllSensorsRecord: rec,
			Seq:              uint64(m.counter),
			SysTicks:         time.Now().UnixNano(),
		}
		m.counter++
		if rec.Success {
			failures = 0
		} else {
			failures++
		}
		if failures >= faultThreshold {
			m.faulted = true
			m.lock.Unlock()
			log.Errorln("device stopped responding, acquisition faulted")
			return
		}
		m.lock.Unlock()
	}
}

func (m *trakstarManager) Running() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session != nil && !m.faulted
}

func (m *trakstarManager) Faulted() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.faulted
}

func (m *trakstarManager) ManuallyStopped() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.manuallyStopped
}

func (m *trakstarManager) TrySleep() error {
	if m.Running() && (time.Now().Unix()-m.lastAccess() > autoSleepDurationSecond) {
		log.Infof("idle for %v seconds, entering sleep mode", autoSleepDurationSecond)
		m.lastAccessSecond.Store(math.MaxInt64)
		if err := m.Stop(); err != nil {
			log.Errorln(err)
			return err
		}
	}
	return nil
}

// Read returns the frames recorded after cursor, where cursor is the Seq of
// the last frame the caller has seen. The returned cursor is the Seq of the
// last frame delivered, so feeding it back never re-delivers a frame. A
// negative cursor returns just the latest frame; a cursor that has fallen out
// of the ring is snapped forward to the latest frame.
func (m *trakstarManager) Read(cursor int64) (int64, []*tracker.Frame, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	m.touch()

	if cursor < 0 {
		cursor = m.counter - 1
		if cursor < 0 {
			return cursor, nil, errors.New("not ready")
		}
		return cursor, []*tracker.Frame{m.ringBuffer[cursor%BufLen]}, nil
	}

	if cursor >= m.counter-1 {
		return cursor, nil, errors.New("no new data")
	}
	start := cursor + 1
	stop := m.counter
	if start < stop-BufLen {
		start = stop - 1
	}
	res := make([]*tracker.Frame, 0, stop-start)
	for i := start; i < stop; i++ {
		res = append(res, m.ringBuffer[i%BufLen])
	}
	return stop - 1, res, nil
}

// ListDev returns the ids of the sensors the session discovered at startup.
func (m *trakstarManager) ListDev() ([]int, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	m.touch()

	if m.session == nil {
		return nil, errNotRunning
	}
	ids := make([]int, m.session.NumberOfSensors())
	for i := range ids {
		ids[i] = i
	}
	return ids, nil
}

func (m *trakstarManager) Health() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.session != nil && m.session.Ok()
}

// withSession runs fn with exclusive access to the live session.
func (m *trakstarManager) withSession(fn func(s *tracker.Session)) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.touch()

	if m.session == nil {
		return errNotRunning
	}
	if m.faulted {
		return errFaulted
	}
	fn(m.session)
	return nil
}

func (m *trakstarManager) TransmitterAttached() (bool, error) {
	var attached bool
	err := m.withSession(func(s *tracker.Session) {
		attached = s.TransmitterAttached()
	})
	return attached, err
}

func (m *trakstarManager) SensorAttached(sensorID int) (bool, error) {
	var attached bool
	err := m.withSession(func(s *tracker.Session) {
		attached = s.SensorAttached(sensorID)
	})
	return attached, err
}

func (m *trakstarManager) SetRate(rate float64) (int, error) {
	var status int
	err := m.withSession(func(s *tracker.Session) {
		status = s.SetMeasurementRate(rate)
	})
	return status, err
}

func (m *trakstarManager) SetRange(range72 bool) (int, error) {
	var status int
	err := m.withSession(func(s *tracker.Session) {
		status = s.SetMaximumRange(range72)
	})
	return status, err
}

func (m *trakstarManager) SetHemisphere(sensorID int, rear bool) (int, error) {
	var status int
	err := m.withSession(func(s *tracker.Session) {
		status = s.SetSensorHemisphere(sensorID, rear)
	})
	return status, err
}

func (m *trakstarManager) SetMode(sensorID int, mode tracker.OutputMode) (int, error) {
	var status int
	err := m.withSession(func(s *tracker.Session) {
		status = s.SetSensorMode(sensorID, mode)
	})
	return status, err
}

func (m *trakstarManager) ReadQuaternion(sensorID int) (tracker.QuaternionRecord, error) {
	var rec tracker.QuaternionRecord
	err := m.withSession(func(s *tracker.Session) {
		rec = s.GetCoordinatesQuaternion(sensorID)
	})
	return rec, err
}

func (m *trakstarManager) ReadAngles(sensorID int) (tracker.AngleRecord, error) {
	var rec tracker.AngleRecord
	err := m.withSession(func(s *tracker.Session) {
		rec = s.GetCoordinatesAngles(sensorID)
	})
	return rec, err
}

func (m *trakstarManager) ReadMatrix(sensorID int) (tracker.MatrixRecord, error) {
	var rec tracker.MatrixRecord
	err := m.withSession(func(s *tracker.Session) {
		rec = s.GetCoordinatesMatrix(sensorID)
	})
	return rec, err
}

func (m *trakstarManager) touch() {
	m.lastAccessSecond.Store(time.Now().Unix())
}

func (m *trakstarManager) lastAccess() int64 {
	return m.lastAccessSecond.Load()
}

// Daemon supervises the manager: it restarts after faults and lets TrySleep
// shut the device down when nobody is reading.
func Daemon(m manager.Manager) {
	for {
		if m.Faulted() {
			log.Infoln("status is faulted, stopping")
			if err := m.Stop(); err != nil {
				log.Errorln(err)
			}
		}
		if !m.Running() && !m.ManuallyStopped() {
			if err := m.Start(); err != nil {
				log.Errorln(err)
				time.Sleep(time.Second * 1)
				continue
			}
		}
		time.Sleep(time.Second * 1)
		_ = m.TrySleep()
	}
}
