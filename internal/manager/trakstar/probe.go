package trakstar

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tarm/serial"
)

// RS-232 rate of the trackers that expose a serial console.
const probeBaudRate = 115200

func listSerialPorts() []string {
	var ports []string
	switch runtime.GOOS {
	case "windows":
		for i := 1; i <= 256; i++ {
			ports = append(ports, fmt.Sprintf("COM%d", i))
		}
	case "linux":
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Errorln("error reading directory:", err)
		}
		for _, file := range files {
			if strings.Contains(file.Name(), "tty") && strings.Contains(file.Name(), "USB") {
				ports = append(ports, "/dev/"+file.Name())
			}
		}
	case "darwin":
		files, err := os.ReadDir("/dev")
		if err != nil {
			log.Fatal(err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if strings.HasPrefix(file.Name(), "tty.") {
				ports = append(ports, "/dev/"+file.Name())
			}
		}
	default:
		log.Fatalf("unsupported platform: %s", runtime.GOOS)
	}
	return ports
}

func testPort(portName string) bool {
	c := &serial.Config{Name: portName, Baud: probeBaudRate, ReadTimeout: time.Second * 5}
	s, err := serial.OpenPort(c)
	if err != nil {
		return false
	}
	fmt.Print(".")
	time.Sleep(time.Millisecond * 100)
	defer func() { _ = s.Close() }()

	buffer := make([]byte, 4096)
	n, _ := s.Read(buffer)
	return n > 0
}

// ProbeDev scans the host's serial ports for anything that talks back. It
// does not speak the tracker protocol, it only narrows down where a device
// might be attached.
func (m *trakstarManager) ProbeDev() ([]string, error) {
	ports := listSerialPorts()
	var validPorts []string

	for _, portName := range ports {
		if testPort(portName) {
			validPorts = append(validPorts, portName)
		}
	}

	if len(validPorts) == 0 {
		return nil, errors.New("no valid ports found")
	}
	return validPorts, nil
}
