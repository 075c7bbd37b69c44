// Package pb defines the gRPC contract of the tracker service. It is
// handwritten instead of protoc-generated: messages are plain structs that
// travel as JSON through the codec registered below, which keeps the build
// free of a protoc toolchain while staying wire-compatible between the
// server and the bundled clients.
package pb

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype both sides of the connection agree on.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// DialOption makes a client connection use the JSON codec for every call.
func DialOption() grpc.DialOption {
	return grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName))
}

type Empty struct{}

type StatusResponse struct {
	Running bool   `json:"running"`
	Faulted bool   `json:"faulted"`
	Healthy bool   `json:"healthy"`
	Err     string `json:"err"`
}

type AcquisitionRequest struct {
	Run bool `json:"run"`
}

type SensorListResponse struct {
	Ids []int32 `json:"ids"`
}

// SensorReading mirrors tracker.SensorRecord.
type SensorReading struct {
	SensorId   int32      `json:"sensor_id"`
	Success    bool       `json:"success"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Z          float64    `json:"z"`
	Quaternion [4]float64 `json:"quaternion"`
}

// Frame mirrors tracker.Frame.
type Frame struct {
	Success    bool             `json:"success"`
	NumSensors int32            `json:"num_sensors"`
	Sensors    []*SensorReading `json:"sensors"`
	Seq        uint64           `json:"seq"`
	SysTicks   int64            `json:"sys_ticks"`
}

type FrameRequest struct {
	// Cursor is the last frame sequence the caller has seen; -1 asks for
	// the latest frame.
	Cursor int64 `json:"cursor"`
}

type FrameResponse struct {
	Frame *Frame `json:"frame"`
	Valid bool   `json:"valid"`
}

type FrameStreamResponse struct {
	Frames []*Frame `json:"frames"`
	Valid  bool     `json:"valid"`
}
