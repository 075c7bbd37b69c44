package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testCmd(configPath string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", configPath, "")
	cmd.Flags().Int64P("port", "p", DefaultAPIPort, "")
	cmd.Flags().StringP("interface", "i", DefaultAPIInterface, "")
	cmd.Flags().Bool("debug", false, "")
	return cmd
}

func TestDefaults(t *testing.T) {
	opt := NewTrackerOpt()
	assert.Equal(t, DefaultGRPCPort, opt.GRPC.Port)
	assert.Equal(t, DefaultAPIPort, opt.API.Port)
	assert.Equal(t, DefaultDriver, opt.Device.Driver)
	assert.Equal(t, DefaultMeasurementRate, opt.Device.Rate)
	assert.Equal(t, DefaultSimSensors, opt.Device.SimSensors)
	assert.False(t, opt.Device.Range72)
	assert.False(t, opt.Debug)
	require.Len(t, opt.Device.Sensors, 1)
	assert.Equal(t, "quaternion", opt.Device.Sensors[0].Mode)
}

func TestParseConfigFile(t *testing.T) {
	content := `
grpc:
  port: 2890
api:
  interface: 127.0.0.1
device:
  driver: sim
  rate: 120
  range72: true
  sim_sensors: 3
  sensors:
    - id: 0
      hemisphere_rear: true
      mode: matrix
    - id: 2
      mode: angles
debug: true
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	desc := NewTrackerDesc()
	require.NoError(t, desc.Parse(testCmd(configPath)))

	assert.Equal(t, 2890, desc.Opt.GRPC.Port)
	assert.Equal(t, DefaultGRPCInterface, desc.Opt.GRPC.Interface)
	assert.Equal(t, "127.0.0.1", desc.Opt.API.Interface)
	assert.Equal(t, "sim", desc.Opt.Device.Driver)
	assert.Equal(t, 120.0, desc.Opt.Device.Rate)
	assert.True(t, desc.Opt.Device.Range72)
	assert.Equal(t, 3, desc.Opt.Device.SimSensors)
	assert.True(t, desc.Opt.Debug)

	require.Len(t, desc.Opt.Device.Sensors, 2)
	assert.Equal(t, 0, desc.Opt.Device.Sensors[0].ID)
	assert.True(t, desc.Opt.Device.Sensors[0].HemisphereRear)
	assert.Equal(t, "matrix", desc.Opt.Device.Sensors[0].Mode)
	assert.Equal(t, 2, desc.Opt.Device.Sensors[1].ID)
	assert.False(t, desc.Opt.Device.Sensors[1].HemisphereRear)
	assert.Equal(t, "angles", desc.Opt.Device.Sensors[1].Mode)
}

func TestParseMissingConfigFallsBackToDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nonexistent.yaml")

	desc := NewTrackerDesc()
	require.NoError(t, desc.Parse(testCmd(configPath)))

	assert.Equal(t, DefaultGRPCPort, desc.Opt.GRPC.Port)
	assert.Equal(t, DefaultDriver, desc.Opt.Device.Driver)
	assert.Equal(t, DefaultSimSensors, desc.Opt.Device.SimSensors)
}

func TestOptYAMLRoundTrip(t *testing.T) {
	opt := NewTrackerOpt()
	opt.Device.Sensors = []SensorOpt{{ID: 1, HemisphereRear: true, Mode: "angles"}}

	buf, err := yaml.Marshal(opt)
	require.NoError(t, err)
	assert.Contains(t, string(buf), "hemisphere_rear: true")
	assert.Contains(t, string(buf), "sim_sensors:")

	var parsed TrackerOpt
	require.NoError(t, yaml.Unmarshal(buf, &parsed))
	assert.Equal(t, opt, parsed)
}
