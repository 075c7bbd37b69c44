package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Edwardzzz-c/gotrak/internal/pb"
)

var defaultTableValue = [][]string{{"ID", "Position", "Quaternion", "Seq"}}

func getTable() *widgets.Table {
	table := widgets.NewTable()
	table.Rows = defaultTableValue
	table.ColumnWidths = []int{6, 28, 36, 12}
	table.TextStyle = ui.NewStyle(ui.ColorWhite)
	table.TextAlignment = ui.AlignRight
	table.SetRect(0, 0, 86, 36)
	return table
}

func printPosition(x, y, z float64) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", x, y, z)
}

func printQuaternion(q [4]float64) string {
	return fmt.Sprintf("%.3f, %.3f, %.3f, %.3f", q[0], q[1], q[2], q[3])
}

func updateValue(address string, record bool, table *widgets.Table) {
	conn, err := grpc.Dial(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		pb.DialOption())
	if err != nil {
		log.Fatalf("did not connect: %v", err)
	}
	defer conn.Close()
	c := pb.NewTrackerServiceClient(conn)

	seen, err := c.GetFrame(context.Background(), &pb.FrameRequest{Cursor: -1})
	if err != nil {
		log.Fatalf("could not get frame: %v", err)
	}

	tableRowMap := make(map[int32]int)
	for _, rec := range seen.Frame.Sensors {
		table.Rows = append(table.Rows, []string{"", "", "", ""})
		tableRowMap[rec.SensorId] = len(table.Rows) - 1
	}

	s, err := c.GetFrameStream(context.Background(), &pb.FrameRequest{Cursor: -1})
	if err != nil {
		log.Fatalf("could not get frame stream: %v", err)
	}

	var writer *bufio.Writer
	if record {
		file, err := os.Create(fmt.Sprintf("%v.jsonl", time.Now().Format("2006-01-02T15-04-05")))
		if err != nil {
			log.Fatalf("could not create file: %v", err)
		}
		defer file.Close()
		writer = bufio.NewWriter(file)
		defer writer.Flush()
	}

	idx := 0
	for {
		resp, err := s.Recv()
		if err != nil {
			log.Fatalf("could not receive frame stream: %v", err)
		}
		for _, frame := range resp.Frames {
			for _, rec := range frame.Sensors {
				row, ok := tableRowMap[rec.SensorId]
				if !ok {
					continue
				}
				table.Rows[row] = []string{
					fmt.Sprintf("%d", rec.SensorId),
					printPosition(rec.X, rec.Y, rec.Z),
					printQuaternion(rec.Quaternion),
					fmt.Sprintf("%d", frame.Seq),
				}
			}
			if writer != nil {
				line, err := json.Marshal(frame)
				if err != nil {
					log.Fatalf("error marshaling frame: %v", err)
				}
				if _, err := writer.Write(append(line, '\n')); err != nil {
					log.Fatalf("error writing frame to file: %v", err)
				}
				if idx%100 == 0 {
					if err := writer.Flush(); err != nil {
						log.Fatalf("error flushing buffer: %v", err)
					}
				}
				idx++
			}
		}
		ui.Render(table)
	}
}

func _main(cmd *cobra.Command, _ []string) {
	address, _ := cmd.Flags().GetString("address")
	record, _ := cmd.Flags().GetBool("record")

	if err := ui.Init(); err != nil {
		log.Fatalf("failed to initialize termui: %v", err)
	}
	defer ui.Close()

	t := getTable()
	go updateValue(address, record, t)

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>":
			return
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "monitor",
	Short: "live view of the tracker sensors over gRPC",
	Long:  "monitor connects to a running gotrak server and renders each sensor's pose in a terminal table, optionally recording frames to a jsonl file",
	Run:   _main,
}

func main() {
	rootCmd.Flags().StringP("address", "a", "localhost:18890", "gotrak gRPC address")
	rootCmd.Flags().BoolP("record", "r", false, "record received frames to a jsonl file")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
